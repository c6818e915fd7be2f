package record

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

type widget struct {
	ID      string
	Owner   string
	Color   color
	Count   int
	Made    *time.Time
	Labels  []string
	Comment *string
}

func widgetSchema(t *testing.T) *Schema[widget] {
	t.Helper()
	s, err := NewSchema(Schema[widget]{
		Name: "widget",
		Fields: []Field{
			{Name: "id", Kind: String},
			{Name: "owner", Kind: String},
			{Name: "color", Kind: Enum, Tags: []string{"RED", "GREEN"}},
			{Name: "count", Kind: Int},
			{Name: "made", Kind: Time},
			{Name: "labels", Kind: StringList},
			{Name: "comment", Kind: String},
		},
		Key:          "id",
		SecondaryKey: "owner",
		Encode: func(w widget, e *Encoder) {
			e.String("id", w.ID)
			e.String("owner", w.Owner)
			e.Enum("color", string(w.Color))
			e.Int("count", w.Count)
			e.Time("made", w.Made)
			e.List("labels", w.Labels)
			if w.Comment != nil {
				e.String("comment", *w.Comment)
			}
		},
		Decode: func(d *Decoder) widget {
			return widget{
				ID:      d.String("id"),
				Owner:   d.String("owner"),
				Color:   EnumOf[color](d, "color"),
				Count:   d.Int("count"),
				Made:    d.Time("made"),
				Labels:  d.List("labels"),
				Comment: d.OptString("comment"),
			}
		},
	})
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	s := widgetSchema(t)
	made := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	blank := ""

	cases := []widget{
		{ID: "w1", Owner: "a@x.com", Color: "RED", Count: 7, Made: &made, Labels: []string{"a", "b c"}, Comment: &blank},
		{ID: "w2"},
		{ID: "w3", Color: "GREEN", Count: -4, Labels: []string{"solo"}},
		{ID: "w4", Labels: []string{}},
	}
	for _, w := range cases {
		t.Run(w.ID, func(t *testing.T) {
			m, err := s.ToMapping(w)
			require.NoError(t, err)
			assert.Equal(t, s.Columns(), m.Names(), "every declared field is emitted in order")

			got, err := s.FromMapping(m)
			require.NoError(t, err)
			assert.Equal(t, w, got)
		})
	}
}

func TestToMapping_AbsentValuesUseSentinel(t *testing.T) {
	s := widgetSchema(t)
	m, err := s.ToMapping(widget{ID: "w1"})
	require.NoError(t, err)

	comment, _ := m.Get("comment")
	assert.Equal(t, Empty, comment)
	made, _ := m.Get("made")
	assert.Equal(t, Empty, made)
	color, _ := m.Get("color")
	assert.Equal(t, Empty, color)
	owner, _ := m.Get("owner")
	assert.Equal(t, "", owner, "an empty string is not the sentinel")
	labels, _ := m.Get("labels")
	assert.Equal(t, Empty, labels, "a nil list is not an empty list")

	m, err = s.ToMapping(widget{ID: "w1", Labels: []string{}})
	require.NoError(t, err)
	labels, _ = m.Get("labels")
	assert.Equal(t, "[]", labels)
}

func TestFromMapping_Coercion(t *testing.T) {
	s := widgetSchema(t)

	got, err := s.FromMapping(Mapping{
		{Name: "id", Value: "w1"},
		{Name: "count", Value: Empty},
		{Name: "labels", Value: Null},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.Nil(t, got.Labels)
	assert.Nil(t, got.Made)
	assert.Nil(t, got.Comment)

	for _, v := range []string{"[]", "[ ]"} {
		got, err := s.FromMapping(Mapping{{Name: "id", Value: "w1"}, {Name: "labels", Value: v}})
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Labels, "value %q", v)
	}
	for _, v := range []string{Empty, Null} {
		got, err := s.FromMapping(Mapping{{Name: "id", Value: "w1"}, {Name: "labels", Value: v}})
		require.NoError(t, err)
		assert.Nil(t, got.Labels, "value %q", v)
	}
}

func TestFromMapping_UnknownEnumTag(t *testing.T) {
	s := widgetSchema(t)
	_, err := s.FromMapping(Mapping{{Name: "id", Value: "w1"}, {Name: "color", Value: "red"}})
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.True(t, IsFatal(err))
}

func TestFromMapping_BadValues(t *testing.T) {
	s := widgetSchema(t)
	cases := map[string]Pair{
		"int":        {Name: "count", Value: "twelve"},
		"time":       {Name: "made", Value: "01/02/2024"},
		"list":       {Name: "labels", Value: "a, b"},
		"undeclared": {Name: "colour", Value: "RED"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.FromMapping(Mapping{{Name: "id", Value: "w1"}, p})
			require.ErrorIs(t, err, ErrCorruptData)

			var de *DataError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, p.Name, de.Field)
		})
	}
}

func TestToMapping_Rejects(t *testing.T) {
	s := widgetSchema(t)

	_, err := s.ToMapping(widget{ID: "w1", Color: "BLUE"})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = s.ToMapping(widget{ID: "w1", Owner: "a" + FieldSeparator + "b"})
	assert.ErrorIs(t, err, ErrReservedToken)

	_, err = s.ToMapping(widget{ID: "w1", Labels: []string{"a,b"}})
	assert.ErrorIs(t, err, ErrReservedToken)
}

func TestEncoder_KindMismatch(t *testing.T) {
	s, err := NewSchema(Schema[widget]{
		Name:   "widget",
		Fields: []Field{{Name: "id", Kind: String}, {Name: "count", Kind: Int}},
		Key:    "id",
		Encode: func(w widget, e *Encoder) {
			e.String("id", w.ID)
			e.String("count", "3")
		},
		Decode: func(d *Decoder) widget { return widget{ID: d.String("id"), Count: d.Int("count")} },
	})
	require.NoError(t, err)

	_, err = s.ToMapping(widget{ID: "w1"})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestNewSchema_Invalid(t *testing.T) {
	enc := func(widget, *Encoder) {}
	dec := func(*Decoder) widget { return widget{} }

	cases := map[string]Schema[widget]{
		"unknown kind":   {Name: "w", Fields: []Field{{Name: "id", Kind: String}, {Name: "x", Kind: Kind(42)}}, Key: "id", Encode: enc, Decode: dec},
		"enum no tags":   {Name: "w", Fields: []Field{{Name: "id", Kind: String}, {Name: "x", Kind: Enum}}, Key: "id", Encode: enc, Decode: dec},
		"duplicate":      {Name: "w", Fields: []Field{{Name: "id", Kind: String}, {Name: "id", Kind: String}}, Key: "id", Encode: enc, Decode: dec},
		"missing key":    {Name: "w", Fields: []Field{{Name: "id", Kind: String}}, Encode: enc, Decode: dec},
		"key not string": {Name: "w", Fields: []Field{{Name: "id", Kind: Int}}, Key: "id", Encode: enc, Decode: dec},
		"bad secondary":  {Name: "w", Fields: []Field{{Name: "id", Kind: String}}, Key: "id", SecondaryKey: "email", Encode: enc, Decode: dec},
		"reserved name":  {Name: "w", Fields: []Field{{Name: "id", Kind: String}, {Name: "a" + RecordSeparator, Kind: String}}, Key: "id", Encode: enc, Decode: dec},
		"no hooks":       {Name: "w", Fields: []Field{{Name: "id", Kind: String}}, Key: "id"},
	}
	for name, sc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewSchema(sc)
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}

	assert.Panics(t, func() { MustSchema(cases["unknown kind"]) })
}

func TestKeys(t *testing.T) {
	s := widgetSchema(t)
	m, err := s.ToMapping(widget{ID: "w1", Owner: "a@x.com"})
	require.NoError(t, err)

	id, secondary := s.Keys(m)
	assert.Equal(t, "w1", id)
	assert.Equal(t, "a@x.com", secondary)
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("ABC@X.com"), FoldKey("abc@x.COM"))
	assert.Equal(t, FoldKey("José"), FoldKey("JOSÉ"))
	assert.NotEqual(t, FoldKey("p1"), FoldKey("p2"))
}

func TestInFile(t *testing.T) {
	s := widgetSchema(t)
	_, err := s.ToMapping(widget{ID: "w1", Color: "PURPLE"})
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.False(t, InFile(err), "encoding a caller's value is not a file problem")

	wrapped := fmt.Errorf("load widget: %w", &DataError{Kind: ErrCorruptData, Path: "/d/widgets.txt", Record: 3})
	assert.True(t, InFile(wrapped))
	assert.False(t, InFile(ErrNotFound))
}
