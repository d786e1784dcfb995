package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectMinimal(t *testing.T) {
	sql, args, err := Select("id", "name").From("teams").ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if sql != "SELECT id, name FROM teams" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestSelectConditionsCombineWithAnd(t *testing.T) {
	sql, args, err := Select("id").
		From("matches").
		Where(Gte("play_date", int64(100))).
		Where(Lt("play_date", int64(200))).
		Where(Or(Eq("team1_id", int64(3)), Eq("team2_id", int64(3)))).
		OrderBy("id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT id FROM matches WHERE play_date >= ? AND play_date < ?" +
		" AND (team1_id = ? OR team2_id = ?) ORDER BY id LIMIT 10 OFFSET 20"
	if sql != want {
		t.Errorf("sql = %q\nwant %q", sql, want)
	}
	wantArgs := []any{int64(100), int64(200), int64(3), int64(3)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestInEmptyMatchesNothing(t *testing.T) {
	sql, args, err := Select("id").From("teams").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if sql != "SELECT id FROM teams WHERE 1=0" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestInPlaceholders(t *testing.T) {
	sql, args, err := Select("id").From("teams").
		Where(In("id", []any{int64(1), int64(2)})).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if sql != "SELECT id FROM teams WHERE id IN (?, ?)" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

func TestToSQLValidation(t *testing.T) {
	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Error("missing columns should fail")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Error("missing table should fail")
	}
}
