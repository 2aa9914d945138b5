package selection

import "testing"

func memFile(name, contentType string) File {
	return FromBytes(name, []byte("content of "+name), contentType)
}

func TestListAddRemove(t *testing.T) {
	l := NewList()
	names := []string{"a.pdf", "b.pdf", "c.png", "d.pdf", "e.jpg"}
	for _, n := range names {
		l.Add(memFile(n, "application/pdf"))
	}

	l.Remove(2)

	files := l.Files()
	if len(files) != len(names)-1 {
		t.Fatalf("expected %d files, got %d", len(names)-1, len(files))
	}
	want := []string{"a.pdf", "b.pdf", "d.pdf", "e.jpg"}
	for i, n := range want {
		if files[i].Name != n {
			t.Errorf("position %d: expected %s, got %s", i, n, files[i].Name)
		}
	}
}

func TestListRemoveOutOfBounds(t *testing.T) {
	l := NewList()
	l.Add(memFile("a.pdf", "application/pdf"))

	l.Remove(-1)
	l.Remove(1)
	l.Remove(99)

	if l.Len() != 1 {
		t.Errorf("expected list untouched, got %d entries", l.Len())
	}
}

func TestListAllowsDuplicates(t *testing.T) {
	l := NewList()
	l.Add(memFile("same.pdf", "application/pdf"))
	l.Add(memFile("same.pdf", "application/pdf"))

	if l.Len() != 2 {
		t.Errorf("expected duplicates to be kept, got %d entries", l.Len())
	}
}

func TestAddDroppedFiltersByContentType(t *testing.T) {
	l := NewList()
	l.AddDropped(
		memFile("doc.pdf", "application/pdf"),
		memFile("photo.png", "image/png"),
		memFile("notes.txt", "text/plain"),
		memFile("data.bin", "application/octet-stream"),
	)

	files := l.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 accepted files, got %d", len(files))
	}
	if files[0].Name != "doc.pdf" || files[1].Name != "photo.png" {
		t.Errorf("unexpected accepted files: %s, %s", files[0].Name, files[1].Name)
	}
}

func TestAddAppliesNoFilter(t *testing.T) {
	// The file-dialog path accepts any file; only drag-and-drop filters.
	l := NewList()
	l.Add(memFile("notes.txt", "text/plain"))

	if l.Len() != 1 {
		t.Errorf("expected dialog-path add to accept any type, got %d entries", l.Len())
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	l := NewList()
	calls := 0
	l.OnChange(func() { calls++ })

	l.Add(memFile("a.pdf", "application/pdf"))
	l.Add(memFile("b.pdf", "application/pdf"))
	l.Remove(0)
	l.Remove(99) // no-op, must not fire
	l.Clear()
	l.Clear() // already empty, must not fire

	if calls != 4 {
		t.Errorf("expected 4 change notifications, got %d", calls)
	}
}
