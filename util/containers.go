package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// list
//*******************************************

type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self *List[T]) Get(index int) T {
	return (*self)[index]
}
func (self *List[T]) Set(index int, value T) {
	(*self)[index] = value
}
func (self *List[T]) Remove(index int) {
	*self = append((*self)[:index], (*self)[index+1:]...)
}
func (self *List[T]) Clear() {
	*self = (*self)[:0]
}
func (self *List[T]) Length() int {
	return len(*self)
}

//*******************************************
// array
//*******************************************

type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}
func (self Array[T]) Length() int {
	return len(self)
}

//*******************************************
// dict
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](cap int) Dict[K, V] {
	return make(map[K]V, cap)
}

func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) Delete(key K) {
	delete(self, key)
}
func (self Dict[K, V]) Length() int {
	return len(self)
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value T
	has   bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, has: true}
}
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has
}

//*******************************************
// tuples
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

//*******************************************
// flags
//*******************************************

// Reusable per-run state for graph algorithms.
//
// Reset is O(1), entries are lazily restored to the default value
// on first access after a reset.
type Flags[T any] struct {
	entries  []_FlagEntry[T]
	_default T
	version  int32
}

type _FlagEntry[T any] struct {
	value   T
	version int32
}

func NewFlags[T any](size int32, _default T) Flags[T] {
	return Flags[T]{
		entries:  make([]_FlagEntry[T], size),
		_default: _default,
		version:  1,
	}
}

func (self *Flags[T]) Get(index int32) *T {
	entry := &self.entries[index]
	if entry.version != self.version {
		entry.value = self._default
		entry.version = self.version
	}
	return &entry.value
}
func (self *Flags[T]) Reset() {
	self.version += 1
}

//*******************************************
// priority queue
//*******************************************

type PriorityQueue[T any, P constraints.Ordered] struct {
	items []_PQEntry[T, P]
}

type _PQEntry[T any, P constraints.Ordered] struct {
	item     T
	priority P
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		items: make([]_PQEntry[T, P], 0, cap),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.items = append(self.items, _PQEntry[T, P]{item, priority})
	index := len(self.items) - 1
	for index > 0 {
		parent := (index - 1) / 2
		if self.items[parent].priority <= self.items[index].priority {
			break
		}
		self.items[parent], self.items[index] = self.items[index], self.items[parent]
		index = parent
	}
}
func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if len(self.items) == 0 {
		var t T
		return t, false
	}
	top := self.items[0].item
	last := len(self.items) - 1
	self.items[0] = self.items[last]
	self.items = self.items[:last]
	index := 0
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index
		if left < len(self.items) && self.items[left].priority < self.items[smallest].priority {
			smallest = left
		}
		if right < len(self.items) && self.items[right].priority < self.items[smallest].priority {
			smallest = right
		}
		if smallest == index {
			break
		}
		self.items[index], self.items[smallest] = self.items[smallest], self.items[index]
		index = smallest
	}
	return top, true
}
func (self *PriorityQueue[T, P]) Length() int {
	return len(self.items)
}
