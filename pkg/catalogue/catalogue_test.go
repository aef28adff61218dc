package catalogue

import "testing"

func TestListIsSortedAndNonEmpty(t *testing.T) {
	infos := List()
	if len(infos) == 0 {
		t.Fatalf("expected at least one built-in demo layout")
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].DisplayName > infos[i].DisplayName {
			t.Fatalf("List() is not sorted by display name at index %d", i)
		}
	}
}

func TestBuildKnownLayouts(t *testing.T) {
	const width, height = 400, 400
	for _, info := range List() {
		layout, err := Build(info.ID, 7, width, height)
		if err != nil {
			t.Fatalf("Build(%q) returned error: %v", info.ID, err)
		}
		if layout.Version != 7 {
			t.Fatalf("Build(%q) did not stamp the requested version", info.ID)
		}
		if len(layout.Lights) == 0 {
			t.Fatalf("Build(%q) produced a layout with no lights", info.ID)
		}
		for _, light := range layout.Lights {
			if light.Pos.X < 1 || light.Pos.X > width-2 || light.Pos.Y < 1 || light.Pos.Y > height-2 {
				t.Fatalf("Build(%q) placed a light at %v, outside the [1, %d]x[1, %d] containment rectangle",
					info.ID, light.Pos, width-2, height-2)
			}
		}
	}
}

func TestBuildScalesToCanvasSize(t *testing.T) {
	for _, size := range [][2]int{{100, 100}, {800, 300}, {200, 900}} {
		width, height := size[0], size[1]
		for _, info := range List() {
			layout, err := Build(info.ID, 1, width, height)
			if err != nil {
				t.Fatalf("Build(%q, %d, %d) returned error: %v", info.ID, width, height, err)
			}
			for _, light := range layout.Lights {
				if light.Pos.X < 1 || light.Pos.X > float64(width-2) || light.Pos.Y < 1 || light.Pos.Y > float64(height-2) {
					t.Fatalf("Build(%q, %d, %d) placed a light at %v, outside containment",
						info.ID, width, height, light.Pos)
				}
			}
		}
	}
}

func TestBuildUnknownLayout(t *testing.T) {
	if _, err := Build("does-not-exist", 1, 400, 400); err == nil {
		t.Fatalf("expected an error for an unknown demo layout id")
	}
}
