package ledger

import "testing"

func TestMonthShiftForward(t *testing.T) {
	m := Month{Year: 2024, Month: 11}

	next := m.Shift(1)
	if next.Year != 2024 || next.Month != 12 {
		t.Fatalf("Shift(1) = %v, want 2024-12", next)
	}

	rolled := m.Shift(2)
	if rolled.Year != 2025 || rolled.Month != 1 {
		t.Fatalf("Shift(2) = %v, want 2025-01", rolled)
	}
}

func TestMonthShiftBackward(t *testing.T) {
	m := Month{Year: 2024, Month: 1}

	prev := m.Shift(-1)
	if prev.Year != 2023 || prev.Month != 12 {
		t.Fatalf("Shift(-1) = %v, want 2023-12", prev)
	}

	far := m.Shift(-13)
	if far.Year != 2022 || far.Month != 12 {
		t.Fatalf("Shift(-13) = %v, want 2022-12", far)
	}
}

func TestMonthShiftRoundTrip(t *testing.T) {
	start := Month{Year: 2024, Month: 6}
	for delta := -30; delta <= 30; delta++ {
		got := start.Shift(delta).Shift(-delta)
		if got != start {
			t.Errorf("Shift(%d) round trip = %v, want %v", delta, got, start)
		}
	}
}

func TestMonthShiftStaysValid(t *testing.T) {
	start := Month{Year: 2024, Month: 6}
	for delta := -30; delta <= 30; delta++ {
		m := start.Shift(delta)
		if m.Month < 1 || m.Month > 12 {
			t.Errorf("Shift(%d) produced month %d", delta, m.Month)
		}
	}
}

func TestMonthString(t *testing.T) {
	m := Month{Year: 2024, Month: 3}
	if got := m.String(); got != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", got)
	}
}

func TestMonthLabel(t *testing.T) {
	m := Month{Year: 2024, Month: 1}
	if got := m.Label(); got != "January 2024" {
		t.Errorf("Label() = %q, want \"January 2024\"", got)
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2024, Month: 2}

	if !m.Contains("2024-02-29") {
		t.Error("2024-02-29 should be in 2024-02")
	}
	if m.Contains("2024-03-01") {
		t.Error("2024-03-01 should not be in 2024-02")
	}
	if m.Contains("not-a-date") {
		t.Error("garbage date should not be contained")
	}
}

func TestMonthValid(t *testing.T) {
	if !(Month{Year: 2024, Month: 12}).Valid() {
		t.Error("2024-12 should be valid")
	}
	if (Month{Year: 2024, Month: 0}).Valid() {
		t.Error("month 0 should be invalid")
	}
	if (Month{Year: 2024, Month: 13}).Valid() {
		t.Error("month 13 should be invalid")
	}
	if (Month{Year: 0, Month: 5}).Valid() {
		t.Error("year 0 should be invalid")
	}
}
