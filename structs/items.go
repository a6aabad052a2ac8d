package structs

import (
	"github.com/ttpr0/go-traffic/geo"
)

//*******************************************
// graph structs
//*******************************************

type Edge struct {
	NodeA int32
	NodeB int32
}

type Node struct {
	Loc geo.Coord
}
