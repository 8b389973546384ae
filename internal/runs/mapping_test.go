package runs

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
)

func TestFiltersFromQuery(t *testing.T) {
	orgID := uuid.New()

	values := url.Values{}
	values.Set("run_type", "document:due_diligence")
	values.Set("status", "completed")
	values.Set("org_id", orgID.String())

	f := FiltersFromQuery(values)
	if f.RunType == nil || *f.RunType != "document:due_diligence" {
		t.Errorf("run_type = %v", f.RunType)
	}
	if f.Status == nil || *f.Status != "completed" {
		t.Errorf("status = %v", f.Status)
	}
	if f.OrgID == nil || *f.OrgID != orgID {
		t.Errorf("org_id = %v", f.OrgID)
	}
}

func TestFiltersFromQueryIgnoresInvalid(t *testing.T) {
	values := url.Values{}
	values.Set("org_id", "not-a-uuid")

	f := FiltersFromQuery(values)
	if f.OrgID != nil {
		t.Errorf("org_id = %v, want nil for invalid uuid", f.OrgID)
	}
	if f.RunType != nil || f.Status != nil {
		t.Error("absent params produced filters")
	}
}

func TestFiltersWhere(t *testing.T) {
	t.Run("empty filters", func(t *testing.T) {
		clause, args := Filters{}.where()
		if clause != "" || args != nil {
			t.Errorf("where() = %q, %v", clause, args)
		}
	})

	t.Run("single filter", func(t *testing.T) {
		status := "running"
		clause, args := Filters{Status: &status}.where()
		if clause != " WHERE status = $1" {
			t.Errorf("clause = %q", clause)
		}
		if len(args) != 1 || args[0] != "running" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("all filters numbered in order", func(t *testing.T) {
		runType := "transcript:meeting"
		status := "completed"
		orgID := uuid.New()

		clause, args := Filters{RunType: &runType, Status: &status, OrgID: &orgID}.where()
		want := " WHERE run_type = $1 AND status = $2 AND org_id = $3"
		if clause != want {
			t.Errorf("clause = %q, want %q", clause, want)
		}
		if len(args) != 3 || args[2] != orgID {
			t.Errorf("args = %v", args)
		}
	})
}
