package pagex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"negative page clamped", Params{Page: -1, Size: 10}, Params{Page: 0, Size: 10}},
		{"zero size defaulted", Params{Page: 2}, Params{Page: 2, Size: DefaultSize}},
		{"oversized clamped", Params{Size: 1000}, Params{Size: MaxSize}},
		{"valid untouched", Params{Page: 1, Size: 50, Sort: "name"}, Params{Page: 1, Size: 50, Sort: "name"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestParams_Offset(t *testing.T) {
	p := Params{Page: 3, Size: 25}
	assert.Equal(t, 75, p.Offset())
	assert.Equal(t, 25, p.Limit())
}

func TestParams_OrderBy(t *testing.T) {
	allowed := map[string]string{"name": "course_name", "code": "course_code"}

	tests := []struct {
		name string
		sort string
		want string
	}{
		{"known column", "name", "course_name"},
		{"known column desc", "name,desc", "course_name DESC"},
		{"unknown column falls back", "drop table", "created_at"},
		{"empty falls back", "", "created_at"},
		{"injection attempt falls back", "name;--", "created_at"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Params{Sort: tc.sort}
			assert.Equal(t, tc.want, p.OrderBy(allowed, "created_at"))
		})
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, Params{Page: 0, Size: 2}, 5)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Len(t, page.Items, 2)

	empty := NewPage[string](nil, Params{Page: 0, Size: 10}, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, int64(0), empty.TotalPages)
}
