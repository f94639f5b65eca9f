package list

// LinkedList is a doubly linked list holding binary safe strings
type LinkedList struct {
	first *node
	last  *node
	size  int
}

type node struct {
	val  []byte
	prev *node
	next *node
}

// Make creates an empty linked list
func Make(vals ...[]byte) *LinkedList {
	list := &LinkedList{}
	for _, v := range vals {
		list.Add(v)
	}
	return list
}

// Add appends val at the tail
func (list *LinkedList) Add(val []byte) {
	if list == nil {
		panic("list is nil")
	}
	n := &node{
		val: val,
	}
	if list.last == nil {
		// empty list
		list.first = n
		list.last = n
	} else {
		n.prev = list.last
		list.last.next = n
		list.last = n
	}
	list.size++
}

// AddFirst inserts val at the head
func (list *LinkedList) AddFirst(val []byte) {
	if list == nil {
		panic("list is nil")
	}
	n := &node{
		val: val,
	}
	if list.first == nil {
		list.first = n
		list.last = n
	} else {
		n.next = list.first
		list.first.prev = n
		list.first = n
	}
	list.size++
}

func (list *LinkedList) removeNode(n *node) []byte {
	if n.prev == nil {
		list.first = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		list.last = n.prev
	} else {
		n.next.prev = n.prev
	}

	// for gc
	n.prev = nil
	n.next = nil

	list.size--
	return n.val
}

// RemoveFirst removes and returns the head element, nil if the list is empty
func (list *LinkedList) RemoveFirst() []byte {
	if list == nil {
		panic("list is nil")
	}
	if list.first == nil {
		return nil
	}
	return list.removeNode(list.first)
}

// RemoveLast removes and returns the tail element, nil if the list is empty
func (list *LinkedList) RemoveLast() []byte {
	if list == nil {
		panic("list is nil")
	}
	if list.last == nil {
		return nil
	}
	return list.removeNode(list.last)
}

// Len returns the number of elements in list
func (list *LinkedList) Len() int {
	if list == nil {
		panic("list is nil")
	}
	return list.size
}

// Range returns elements within [start, stop), both bounds must be valid
func (list *LinkedList) Range(start int, stop int) [][]byte {
	if list == nil {
		panic("list is nil")
	}
	if start < 0 || start > list.size {
		panic("start out of bound")
	}
	if stop < start || stop > list.size {
		panic("stop out of bound")
	}
	sliceSize := stop - start
	slice := make([][]byte, sliceSize)
	n := list.first
	for i := 0; i < start; i++ {
		n = n.next
	}
	for i := 0; i < sliceSize; i++ {
		slice[i] = n.val
		n = n.next
	}
	return slice
}

// ForEach visits each element from head to tail, stops when visitor returns false
func (list *LinkedList) ForEach(consumer func(i int, val []byte) bool) {
	if list == nil {
		panic("list is nil")
	}
	i := 0
	for n := list.first; n != nil; n = n.next {
		if !consumer(i, n.val) {
			break
		}
		i++
	}
}
