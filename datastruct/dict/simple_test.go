package dict

import (
	"strconv"
	"testing"
)

func TestSimplePut(t *testing.T) {
	d := MakeSimple()
	if ret := d.Put("a", 1); ret != 1 {
		t.Error("expect insert count 1")
	}
	if ret := d.Put("a", 2); ret != 0 {
		t.Error("expect insert count 0 on overwrite")
	}
	val, ok := d.Get("a")
	if !ok || val.(int) != 2 {
		t.Error("overwrite lost")
	}
	if d.Len() != 1 {
		t.Error("expect len 1")
	}
}

func TestSimplePutIfAbsent(t *testing.T) {
	d := MakeSimple()
	if ret := d.PutIfAbsent("a", 1); ret != 1 {
		t.Error("expect insert count 1")
	}
	if ret := d.PutIfAbsent("a", 2); ret != 0 {
		t.Error("expect insert count 0")
	}
	val, _ := d.Get("a")
	if val.(int) != 1 {
		t.Error("PutIfAbsent should not overwrite")
	}
}

func TestSimpleRemove(t *testing.T) {
	d := MakeSimple()
	d.Put("a", 1)
	if ret := d.Remove("a"); ret != 1 {
		t.Error("expect remove count 1")
	}
	if ret := d.Remove("a"); ret != 0 {
		t.Error("expect remove count 0")
	}
	if _, ok := d.Get("a"); ok {
		t.Error("key should be gone")
	}
}

func TestSimpleForEachAndClear(t *testing.T) {
	d := MakeSimple()
	size := 10
	for i := 0; i < size; i++ {
		d.Put("k"+strconv.Itoa(i), i)
	}
	count := 0
	d.ForEach(func(key string, val interface{}) bool {
		count++
		return true
	})
	if count != size {
		t.Errorf("expect %d visits, got %d", size, count)
	}
	if len(d.Keys()) != size {
		t.Error("wrong key count")
	}
	d.Clear()
	if d.Len() != 0 {
		t.Error("expect empty dict after clear")
	}
}
