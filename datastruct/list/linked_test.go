package list

import (
	"strconv"
	"testing"
)

func toBytes(i int) []byte {
	return []byte(strconv.Itoa(i))
}

func TestAddAndRange(t *testing.T) {
	list := Make()
	size := 10
	for i := 0; i < size; i++ {
		list.Add(toBytes(i))
	}
	if list.Len() != size {
		t.Errorf("expect len %d, got %d", size, list.Len())
	}
	slice := list.Range(0, size)
	for i, v := range slice {
		if string(v) != strconv.Itoa(i) {
			t.Errorf("wrong element at %d: %s", i, v)
		}
	}
	sub := list.Range(2, 5)
	if len(sub) != 3 || string(sub[0]) != "2" || string(sub[2]) != "4" {
		t.Error("wrong sub range")
	}
	empty := list.Range(4, 4)
	if len(empty) != 0 {
		t.Error("expect empty range")
	}
}

func TestAddFirst(t *testing.T) {
	list := Make()
	list.AddFirst([]byte("v1"))
	list.AddFirst([]byte("v2"))
	slice := list.Range(0, list.Len())
	if string(slice[0]) != "v2" || string(slice[1]) != "v1" {
		t.Error("expect LIFO order at head")
	}
}

func TestRemove(t *testing.T) {
	list := Make([]byte("v1"), []byte("v2"), []byte("v3"))
	if string(list.RemoveFirst()) != "v1" {
		t.Error("wrong head")
	}
	if string(list.RemoveLast()) != "v3" {
		t.Error("wrong tail")
	}
	if string(list.RemoveFirst()) != "v2" {
		t.Error("wrong remainder")
	}
	if list.RemoveFirst() != nil || list.RemoveLast() != nil {
		t.Error("expect nil from empty list")
	}
	if list.Len() != 0 {
		t.Error("expect empty list")
	}
	// reuse after drained
	list.Add([]byte("v4"))
	if list.Len() != 1 || string(list.RemoveLast()) != "v4" {
		t.Error("list broken after drain")
	}
}

func TestForEach(t *testing.T) {
	list := Make()
	size := 5
	for i := 0; i < size; i++ {
		list.Add(toBytes(i))
	}
	visited := 0
	list.ForEach(func(i int, val []byte) bool {
		if string(val) != strconv.Itoa(i) {
			t.Errorf("wrong element at %d: %s", i, val)
		}
		visited++
		return true
	})
	if visited != size {
		t.Errorf("expect %d visits, got %d", size, visited)
	}
	visited = 0
	list.ForEach(func(i int, val []byte) bool {
		visited++
		return i < 2
	})
	if visited != 3 {
		t.Error("ForEach should stop when consumer returns false")
	}
}
