package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBufferRoundtrip(t *testing.T) {
	writer := NewBufferWriter()
	Write[int32](writer, 42)
	Write[float32](writer, 1.5)
	WriteString(writer, "traffic")
	WriteArray(writer, Array[int32]{1, 2, 3})

	reader := NewBufferReader(writer.Bytes())
	if v := Read[int32](reader); v != 42 {
		t.Errorf("Read[int32] = %v; want 42", v)
	}
	if v := Read[float32](reader); v != 1.5 {
		t.Errorf("Read[float32] = %v; want 1.5", v)
	}
	if v := ReadString(reader); v != "traffic" {
		t.Errorf("ReadString = %v; want traffic", v)
	}
	arr := ReadArray[int32](reader)
	if arr.Length() != 3 || arr[0] != 1 || arr[2] != 3 {
		t.Errorf("ReadArray = %v; want [1 2 3]", arr)
	}
}

func TestFileRoundtrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "values")

	WriteArrayToFile(Array[int64]{7, 8, 9}, file)
	arr := ReadArrayFromFile[int64](file)
	if arr.Length() != 3 || arr[1] != 8 {
		t.Errorf("ReadArrayFromFile = %v; want [7 8 9]", arr)
	}

	if _, err := os.Stat(file); err != nil {
		t.Errorf("os.Stat = %v; want nil", err)
	}
}
