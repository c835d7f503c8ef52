package grid

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/colourgrid/internal/colour"
)

func mustParse(t *testing.T, space colour.Space, hex string) colour.Colour {
	t.Helper()
	c, err := space.ParseHex(hex)
	if err != nil {
		t.Fatalf("ParseHex(%q) error = %v", hex, err)
	}
	return c
}

func TestFirstGridRGB24(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9).First()

	if got := g.Depth(); got != 0 {
		t.Errorf("Depth() = %d, want 0", got)
	}
	if got := g.ColourComponentStepSize(); got != 32 {
		t.Errorf("ColourComponentStepSize() = %d, want 32", got)
	}
	if got := g.ColumnCount(); got != 32 {
		t.Errorf("ColumnCount() = %d, want 32", got)
	}
	if got := g.RowCount(); got != 16 {
		t.Errorf("RowCount() = %d, want 16", got)
	}
	if got := g.CellCount(); got != 512 {
		t.Errorf("CellCount() = %d, want 512", got)
	}
	if !g.HasSubgrids() {
		t.Error("HasSubgrids() = false, want true")
	}
	if got := g.FirstColour().Hex(); got != "000000" {
		t.Errorf("FirstColour() = %s, want 000000", got)
	}
	if got := g.LastColour().Hex(); got != "FFFFFF" {
		t.Errorf("LastColour() = %s, want FFFFFF", got)
	}
	if got, want := g.Summary(), "16 x 32 = 512 colours: #000000-#FFFFFF / 32"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestFirstGridCells(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9).First()
	cells := g.AllCells()

	black, ok := g.Locate(colour.Black())
	if !ok {
		t.Fatal("Locate(black) found no cell")
	}
	if got := black.First().Hex(); got != "000000" {
		t.Errorf("black cell First() = %s, want 000000", got)
	}
	if got := black.Middle().Hex(); got != "101010" {
		t.Errorf("black cell Middle() = %s, want 101010", got)
	}
	if got := black.Last().Hex(); got != "1F1F1F" {
		t.Errorf("black cell Last() = %s, want 1F1F1F", got)
	}

	// Colours with a single dominant red component come first, greys last,
	// so black sits at index 504 rather than at (0, 0).
	if got := cells[0].First().Hex(); got != "200000" {
		t.Errorf("cells[0].First() = %s, want 200000", got)
	}
	if cells[0].Row() != 0 || cells[0].Column() != 0 {
		t.Errorf("cells[0] at (%d, %d), want (0, 0)", cells[0].Row(), cells[0].Column())
	}
	lastCell := cells[len(cells)-1]
	if got := lastCell.First().Hex(); got != "E0E0E0" {
		t.Errorf("last cell First() = %s, want E0E0E0", got)
	}
	if lastCell.Row() != 15 || lastCell.Column() != 31 {
		t.Errorf("last cell at (%d, %d), want (15, 31)", lastCell.Row(), lastCell.Column())
	}
	if got := black.Row()*g.ColumnCount() + black.Column(); got != len(cells)-8 {
		t.Errorf("black cell index = %d, want %d (first of the 8 greys)", got, len(cells)-8)
	}
}

func TestCellsAreRowMajorAndSorted(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9).First()
	cells := g.AllCells()

	for k, cell := range cells {
		if cell.Row() != k/g.ColumnCount() || cell.Column() != k%g.ColumnCount() {
			t.Fatalf("cell %d at (%d, %d)", k, cell.Row(), cell.Column())
		}
		if k > 0 && colour.Compare(cells[k-1].First(), cell.First()) >= 0 {
			t.Fatalf("cells %d and %d out of order: %s, %s", k-1, k, cells[k-1].First().Hex(), cell.First().Hex())
		}
	}

	// The iterator yields the same cells and can stop early.
	n := 0
	for cell := range g.Cells() {
		if !cell.First().Equal(cells[n].First()) {
			t.Fatalf("Cells() item %d = %s, want %s", n, cell.First().Hex(), cells[n].First().Hex())
		}
		n++
		if n == 10 {
			break
		}
	}
}

func TestFirstGridCellCount(t *testing.T) {
	tests := []struct {
		name      string
		space     colour.Space
		cellsLog2 int
		want      int
	}{
		{name: "rgb24 512", space: colour.RGB24, cellsLog2: 9, want: 1 << 9},
		{name: "rgb12 512", space: rgb12, cellsLog2: 9, want: 1 << 9},
		{name: "rgb12 whole space", space: rgb12, cellsLog2: 12, want: 1 << 12},
		{name: "rgb12 larger than space", space: rgb12, cellsLog2: 15, want: 1 << 12},
		{name: "grey4 bigger grid", space: colour.Space{ComponentCount: 1, BitsPerComponent: 4}, cellsLog2: 6, want: 1 << 4},
		{name: "two components", space: colour.Space{ComponentCount: 2, BitsPerComponent: 4}, cellsLog2: 4, want: 1 << 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustGeometry(tt.space, tt.cellsLog2).First()
			if got := g.CellCount(); got != tt.want {
				t.Errorf("CellCount() = %d, want %d", got, tt.want)
			}
			if got := len(g.AllCells()); got != tt.want {
				t.Errorf("len(AllCells()) = %d, want %d", got, tt.want)
			}
			if g.ColumnCount() < g.RowCount() {
				t.Errorf("grid is %d x %d, want at least as many columns as rows", g.RowCount(), g.ColumnCount())
			}
		})
	}
}

// volume returns the number of colours in the box [first, last].
func volume(first, last colour.Colour) int {
	v := 1
	for i := range first.Space().ComponentCount {
		v *= last.Component(i) - first.Component(i) + 1
	}
	return v
}

// disjoint reports whether two cell boxes share no colour.
func disjoint(a, b Cell) bool {
	for i := range a.First().Space().ComponentCount {
		if a.Last().Component(i) < b.First().Component(i) || b.Last().Component(i) < a.First().Component(i) {
			return true
		}
	}
	return false
}

func assertTiles(t *testing.T, g *Grid) {
	t.Helper()
	cells := g.AllCells()
	if len(cells) != g.CellCount() {
		t.Fatalf("len(AllCells()) = %d, want %d", len(cells), g.CellCount())
	}

	total := 0
	for i, a := range cells {
		if !g.Contains(a.First()) || !g.Contains(a.Last()) {
			t.Fatalf("cell %s-%s outside grid %s", a.First().Hex(), a.Last().Hex(), g.Summary())
		}
		if !a.Contains(a.Middle()) {
			t.Fatalf("cell %s-%s does not contain its middle %s", a.First().Hex(), a.Last().Hex(), a.Middle().Hex())
		}
		total += volume(a.First(), a.Last())
		for _, b := range cells[i+1:] {
			if !disjoint(a, b) {
				t.Fatalf("cells %s-%s and %s-%s overlap", a.First().Hex(), a.Last().Hex(), b.First().Hex(), b.Last().Hex())
			}
		}
	}
	if want := volume(g.FirstColour(), g.LastColour()); total != want {
		t.Errorf("cells cover %d colours, grid has %d", total, want)
	}
}

func TestCellsTileGrid(t *testing.T) {
	rgb := MustGeometry(colour.RGB24, 9)
	depth1, err := rgb.Grid(1, mustParse(t, colour.RGB24, "6020E0"))
	if err != nil {
		t.Fatalf("Grid(1) error = %v", err)
	}
	depth2, err := depth1.Subgrid(mustParse(t, colour.RGB24, "6838F0"))
	if err != nil {
		t.Fatalf("Subgrid() error = %v", err)
	}

	small := MustGeometry(rgb12, 6)
	smallDepth1, err := small.Grid(1, mustParse(t, rgb12, "48C"))
	if err != nil {
		t.Fatalf("Grid(1) error = %v", err)
	}

	tests := []struct {
		name string
		grid *Grid
	}{
		{name: "rgb24 depth 0", grid: rgb.First()},
		{name: "rgb24 depth 1", grid: depth1},
		{name: "rgb24 depth 2", grid: depth2},
		{name: "rgb12 depth 0", grid: small.First()},
		{name: "rgb12 depth 1", grid: smallDepth1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTiles(t, tt.grid)
		})
	}
}

func TestDeeperGrids(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9)

	depth1, err := g.First().Subgrid(mustParse(t, colour.RGB24, "200000"))
	if err != nil {
		t.Fatalf("Subgrid() error = %v", err)
	}
	if got := depth1.LastColour().Hex(); got != "3F1F1F" {
		t.Errorf("depth 1 LastColour() = %s, want 3F1F1F", got)
	}
	if got := depth1.ColourComponentStepSize(); got != 4 {
		t.Errorf("depth 1 step = %d, want 4", got)
	}
	if depth1.ColumnCount() != 32 || depth1.RowCount() != 16 {
		t.Errorf("depth 1 grid is %d x %d, want 16 x 32", depth1.RowCount(), depth1.ColumnCount())
	}

	leaf, err := depth1.Subgrid(mustParse(t, colour.RGB24, "241C08"))
	if err != nil {
		t.Fatalf("Subgrid() error = %v", err)
	}
	if leaf.HasSubgrids() {
		t.Error("depth 2 HasSubgrids() = true, want false")
	}
	if got := leaf.ColourComponentStepSize(); got != 1 {
		t.Errorf("leaf step = %d, want 1", got)
	}
	if leaf.ColumnCount() != 8 || leaf.RowCount() != 8 {
		t.Errorf("leaf grid is %d x %d, want 8 x 8", leaf.RowCount(), leaf.ColumnCount())
	}
	if got := leaf.LastColour().Hex(); got != "271F0B" {
		t.Errorf("leaf LastColour() = %s, want 271F0B", got)
	}
	for cell := range leaf.Cells() {
		if !cell.First().Equal(cell.Middle()) || !cell.First().Equal(cell.Last()) {
			t.Fatalf("leaf cell %s-%s-%s is not a single colour", cell.First().Hex(), cell.Middle().Hex(), cell.Last().Hex())
		}
	}

	if _, err := g.Grid(3, mustParse(t, colour.RGB24, "241C08")); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("Grid(3) error = %v, want ErrInvalidDepth", err)
	}
}

func TestLeafGridsAreSingleColour(t *testing.T) {
	geometries := []*Geometry{
		MustGeometry(colour.RGB24, 9),
		MustGeometry(rgb12, 6),
		MustGeometry(colour.Space{ComponentCount: 2, BitsPerComponent: 4}, 4),
		MustGeometry(colour.Space{ComponentCount: 1, BitsPerComponent: 4}, 6),
	}

	for _, geometry := range geometries {
		trail := geometry.Trail(geometry.Space().White())
		leaf := trail[len(trail)-1].Grid
		if leaf.HasSubgrids() {
			t.Fatalf("%s: last trail grid has subgrids", geometry.Space())
		}
		if leaf.ColourComponentStepSize() != 1 {
			t.Errorf("%s: leaf step = %d, want 1", geometry.Space(), leaf.ColourComponentStepSize())
		}
		for cell := range leaf.Cells() {
			if !cell.IsSingleColour() || !cell.Middle().Equal(cell.First()) {
				t.Fatalf("%s: leaf cell %s-%s is not a single colour", geometry.Space(), cell.First().Hex(), cell.Last().Hex())
			}
		}
		if leaf.Depth() != geometry.MaxDepth() {
			t.Errorf("%s: leaf depth = %d, want %d", geometry.Space(), leaf.Depth(), geometry.MaxDepth())
		}
		if _, err := geometry.Grid(geometry.MaxDepth()+1, leaf.FirstColour()); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("%s: Grid(MaxDepth+1) error = %v, want ErrInvalidDepth", geometry.Space(), err)
		}
		if want := geometry.Space().ValuesLog2()/geometry.CellsLog2() + 1; len(trail) > want {
			t.Errorf("%s: trail has %d grids, want at most %d", geometry.Space(), len(trail), want)
		}
	}
}

func TestGridInvalidStart(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9)

	tests := []struct {
		name  string
		depth int
		hex   string
	}{
		{name: "depth 0 not black", depth: 0, hex: "000001"},
		{name: "depth 1 overflows", depth: 1, hex: "FFFFFF"},
		{name: "depth 1 partly overflows", depth: 1, hex: "E10000"},
		{name: "depth 2 overflows", depth: 2, hex: "FDFDFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Grid(tt.depth, mustParse(t, colour.RGB24, tt.hex))
			if !errors.Is(err, ErrInvalidStart) {
				t.Errorf("Grid(%d, %s) error = %v, want ErrInvalidStart", tt.depth, tt.hex, err)
			}
		})
	}
}

func TestSubgridOfLeafPanics(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9)
	leaf, err := g.Grid(2, colour.Black())
	if err != nil {
		t.Fatalf("Grid(2) error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Subgrid() on a leaf did not panic")
		}
	}()
	_, _ = leaf.Subgrid(colour.Black())
}

func TestLocate(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9)
	depth1, err := g.Grid(1, mustParse(t, colour.RGB24, "200000"))
	if err != nil {
		t.Fatalf("Grid(1) error = %v", err)
	}

	cell, ok := depth1.Locate(mustParse(t, colour.RGB24, "2B0A1F"))
	if !ok {
		t.Fatal("Locate() found no cell")
	}
	if got := cell.First().Hex(); got != "28081C" {
		t.Errorf("Locate() cell First() = %s, want 28081C", got)
	}

	if _, ok := depth1.Locate(mustParse(t, colour.RGB24, "400000")); ok {
		t.Error("Locate() found a cell for a colour outside the grid")
	}
	if _, ok := depth1.Locate(rgb12.Black()); ok {
		t.Error("Locate() found a cell for a colour from another space")
	}
}

func TestCellJSON(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9).First()
	cell, _ := g.Locate(colour.Black())

	data, err := json.Marshal(cell)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	want := map[string]any{
		"row":    float64(cell.Row()),
		"column": float64(cell.Column()),
		"first":  "000000",
		"middle": "101010",
		"last":   "1F1F1F",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestGridJSON(t *testing.T) {
	g := MustGeometry(colour.RGB24, 9).First()

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got struct {
		Depth       int              `json:"depth"`
		Rows        int              `json:"rows"`
		Columns     int              `json:"columns"`
		CellCount   int              `json:"cell_count"`
		Step        int              `json:"step"`
		First       string           `json:"first"`
		Last        string           `json:"last"`
		HasSubgrids bool             `json:"has_subgrids"`
		Summary     string           `json:"summary"`
		Cells       []map[string]any `json:"cells"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if got.Depth != 0 || got.Rows != 16 || got.Columns != 32 || got.CellCount != 512 || got.Step != 32 {
		t.Errorf("grid JSON = %+v", got)
	}
	if got.First != "000000" || got.Last != "FFFFFF" || !got.HasSubgrids || got.Summary != g.Summary() {
		t.Errorf("grid JSON range = %s-%s, subgrids %t, summary %q", got.First, got.Last, got.HasSubgrids, got.Summary)
	}
	if len(got.Cells) != 512 || got.Cells[0]["first"] != "200000" {
		t.Errorf("grid JSON has %d cells", len(got.Cells))
	}
}
