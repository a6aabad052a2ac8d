package structs

import (
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// adjacency topology
//*******************************************

type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
}

// CSR layout over directed edges, separately for outgoing and
// incoming adjacency.
type AdjacencyArray struct {
	fwd_offsets Array[int32]
	fwd_entries Array[Tuple[int32, int32]]
	bwd_offsets Array[int32]
	bwd_entries Array[Tuple[int32, int32]]
}

func BuildAdjacencyArray(nodes Array[Node], edges Array[Edge]) AdjacencyArray {
	fwd_lists := NewArray[List[Tuple[int32, int32]]](nodes.Length())
	bwd_lists := NewArray[List[Tuple[int32, int32]]](nodes.Length())
	for i := 0; i < edges.Length(); i++ {
		edge := edges[i]
		fwd_lists[edge.NodeA].Add(MakeTuple(int32(i), edge.NodeB))
		bwd_lists[edge.NodeB].Add(MakeTuple(int32(i), edge.NodeA))
	}

	fwd_offsets := NewArray[int32](nodes.Length() + 1)
	bwd_offsets := NewArray[int32](nodes.Length() + 1)
	fwd_entries := NewList[Tuple[int32, int32]](edges.Length())
	bwd_entries := NewList[Tuple[int32, int32]](edges.Length())
	for i := 0; i < nodes.Length(); i++ {
		fwd_offsets[i] = int32(fwd_entries.Length())
		for _, entry := range fwd_lists[i] {
			fwd_entries.Add(entry)
		}
		bwd_offsets[i] = int32(bwd_entries.Length())
		for _, entry := range bwd_lists[i] {
			bwd_entries.Add(entry)
		}
	}
	fwd_offsets[nodes.Length()] = int32(fwd_entries.Length())
	bwd_offsets[nodes.Length()] = int32(bwd_entries.Length())

	return AdjacencyArray{
		fwd_offsets: fwd_offsets,
		fwd_entries: Array[Tuple[int32, int32]](fwd_entries),
		bwd_offsets: bwd_offsets,
		bwd_entries: Array[Tuple[int32, int32]](bwd_entries),
	}
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}
func (self *AdjacencyArray) GetDegree(node int32, forward bool) int16 {
	if forward {
		return int16(self.fwd_offsets[node+1] - self.fwd_offsets[node])
	}
	return int16(self.bwd_offsets[node+1] - self.bwd_offsets[node])
}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	entries  Array[Tuple[int32, int32]]
	curr     int32
	end      int32
	started  bool
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.topology.fwd_entries
		self.curr = self.topology.fwd_offsets[node]
		self.end = self.topology.fwd_offsets[node+1]
	} else {
		self.entries = self.topology.bwd_entries
		self.curr = self.topology.bwd_offsets[node]
		self.end = self.topology.bwd_offsets[node+1]
	}
	self.started = false
}
func (self *AdjArrayAccessor) Next() bool {
	if !self.started {
		self.started = true
	} else {
		self.curr += 1
	}
	return self.curr < self.end
}
func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.entries[self.curr].A
}
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.entries[self.curr].B
}
