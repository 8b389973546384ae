package pagination_test

import (
	"net/url"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		req      pagination.PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid request", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Normalize(testConfig())
			if tc.req.Page != tc.wantPage {
				t.Errorf("page = %d, want %d", tc.req.Page, tc.wantPage)
			}
			if tc.req.PageSize != tc.wantSize {
				t.Errorf("page_size = %d, want %d", tc.req.PageSize, tc.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("offset = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "4")
	values.Set("page_size", "10")

	req := pagination.PageRequestFromQuery(values, testConfig())
	if req.Page != 4 || req.PageSize != 10 {
		t.Errorf("request = %+v", req)
	}

	req = pagination.PageRequestFromQuery(url.Values{}, testConfig())
	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("empty query request = %+v", req)
	}
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult([]string{"a", "b"}, 45, 1, 20)
	if result.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", result.TotalPages)
	}

	empty := pagination.NewPageResult[string](nil, 0, 1, 20)
	if empty.Data == nil {
		t.Error("nil data not normalized to empty slice")
	}
	if empty.TotalPages != 1 {
		t.Errorf("total_pages = %d, want 1", empty.TotalPages)
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("defaults = %+v", cfg)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("default exceeding max did not error")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{MaxPageSize: 50})
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 50 {
		t.Errorf("merged = %+v", cfg)
	}
}
