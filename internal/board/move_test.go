package board

import "testing"

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"e2e4", Move{E2, E4, NoPieceType}},
		{"a7a8q", Move{A7, A8, Queen}},
		{"a7a8N", Move{A7, A8, Knight}},
		{"h2h1r", Move{H2, H1, Rook}},
		{"c7c8B", Move{C7, C8, Bishop}},
	}

	for _, tc := range tests {
		got, err := ParseMove(tc.input)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e9", "i2i4", "e2e4x", "e2e4qq"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Move{E2, E4, NoPieceType}, "e2e4"},
		{Move{A7, A8, Queen}, "a7a8Q"},
		{Move{G7, G8, Knight}, "g7g8N"},
		{NoMove, "0000"},
	}

	for _, tc := range tests {
		if got := tc.move.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.move, got, tc.want)
		}
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for sq := A8; sq <= H1; sq++ {
		parsed, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if parsed != sq {
			t.Fatalf("round trip %s -> %s", sq, parsed)
		}
	}

	if E4.Row() != 4 || E4.Col() != 4 {
		t.Errorf("e4 = row %d col %d, want row 4 col 4", E4.Row(), E4.Col())
	}
	if E1.Mirror() != E8 {
		t.Errorf("e1 mirrored = %s, want e8", E1.Mirror())
	}
}
