package availability

import (
	"testing"

	"dropship_manager/internal/table"
)

func TestAggregateExactColumn(t *testing.T) {
	header := []string{"Handle", "Available Quantity"}
	rows := []table.Row{
		{"Handle": "h1", "Available Quantity": "3"},
		{"Handle": "h1", "Available Quantity": "2.7"},
		{"Handle": "h1"},
	}

	total, ok := Aggregate(rows, header)
	if !ok {
		t.Fatal("expected quantity data to be found")
	}
	// 3 + 2.7 + 0 truncates to 5.
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
}

func TestAggregateSubstringFallback(t *testing.T) {
	header := []string{"Handle", "Qty Available"}
	rows := []table.Row{
		{"Handle": "h1", "Qty Available": "4"},
	}

	total, ok := Aggregate(rows, header)
	if !ok {
		t.Fatal("expected substring fallback to find the column")
	}
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
}

func TestAggregateNoData(t *testing.T) {
	header := []string{"Handle", "Title"}
	rows := []table.Row{
		{"Handle": "h1", "Title": "Widget"},
	}

	total, ok := Aggregate(rows, header)
	if ok {
		t.Error("expected no-data, got ok=true")
	}
	if total != 0 {
		t.Errorf("no-data total should be 0, got %d", total)
	}
}

func TestAggregateNoDataWhenColumnInHeaderButNoCell(t *testing.T) {
	// The reconciled header carries the inventory columns even for
	// groups that matched nothing; only cell presence marks real data.
	header := []string{"Handle", "Title", "Available Quantity"}
	rows := []table.Row{
		{"Handle": "h1", "Title": "Widget"},
		{"Handle": "h1", "Title": "Widget"},
	}

	total, ok := Aggregate(rows, header)
	if ok {
		t.Error("group with no quantity cells must report no-data, not zero")
	}
	if total != 0 {
		t.Errorf("no-data total should be 0, got %d", total)
	}
}

func TestAggregateZeroStockIsDataNotNoData(t *testing.T) {
	header := []string{"Handle", "Available Quantity"}
	rows := []table.Row{
		{"Handle": "h1", "Available Quantity": "0"},
		{"Handle": "h1"},
	}

	total, ok := Aggregate(rows, header)
	if !ok {
		t.Error("a present zero cell is zero stock, not missing data")
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
}

func TestAggregateAdditive(t *testing.T) {
	header := []string{"Handle", "Available Quantity"}
	part1 := []table.Row{
		{"Handle": "h1", "Available Quantity": "5"},
		{"Handle": "h1", "Available Quantity": "1"},
	}
	part2 := []table.Row{
		{"Handle": "h1", "Available Quantity": "7"},
	}

	t1, _ := Aggregate(part1, header)
	t2, _ := Aggregate(part2, header)
	combined, _ := Aggregate(append(append([]table.Row{}, part1...), part2...), header)
	if combined != t1+t2 {
		t.Errorf("aggregation not additive: %d + %d != %d", t1, t2, combined)
	}
}

func TestAggregateUnparseableAsZero(t *testing.T) {
	header := []string{"Available Quantity"}
	rows := []table.Row{
		{"Available Quantity": "n/a"},
		{"Available Quantity": "2"},
		{"Available Quantity": " "},
	}

	total, ok := Aggregate(rows, header)
	if !ok || total != 2 {
		t.Errorf("expected total 2 with data, got %d (ok=%v)", total, ok)
	}
}

func TestSumQuantityLike(t *testing.T) {
	row := table.Row{
		"Available Quantity": "3",
		"On hand count":      "2",
		"Title":              "Widget",
	}
	if got := SumQuantityLike(row); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}

	empty := table.Row{"Title": "Widget"}
	if got := SumQuantityLike(empty); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
