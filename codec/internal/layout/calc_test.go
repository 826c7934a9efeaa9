package layout

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  int64
		align int64
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S8{}, "s8", 1, 1},
		{wit.U16{}, "u16", 2, 2},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.S32{}, "s32", 4, 4},
		{wit.U64{}, "u64", 8, 8},
		{wit.S64{}, "s64", 8, 8},
		{wit.F32{}, "f32", 4, 4},
		{wit.F64{}, "f64", 8, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := c.Calculate(tc.typ)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{}}
		info, err := c.Calculate(typedef)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got size %d align %d, want 0/1", info.Size, info.Align)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "a", Type: wit.U8{}},
				{Name: "b", Type: wit.F64{}},
				{Name: "c", Type: wit.U16{}},
			},
		}}
		info, err := c.Calculate(typedef)
		if err != nil {
			t.Fatal(err)
		}
		wantOffs := []int64{0, 8, 16}
		for i, w := range wantOffs {
			if info.Offsets[i] != w {
				t.Errorf("field %d offset: got %d, want %d", i, info.Offsets[i], w)
			}
		}
		if info.Size != 24 {
			t.Errorf("size: got %d, want 24", info.Size)
		}
		if info.Align != 8 {
			t.Errorf("align: got %d, want 8", info.Align)
		}
	})

	t.Run("nested", func(t *testing.T) {
		inner := &wit.TypeDef{Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "x", Type: wit.S32{}},
				{Name: "y", Type: wit.S32{}},
			},
		}}
		outer := &wit.TypeDef{Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "tag", Type: wit.U8{}},
				{Name: "pt", Type: inner},
			},
		}}
		info, err := c.Calculate(outer)
		if err != nil {
			t.Fatal(err)
		}
		if info.Offsets[1] != 4 || info.Size != 12 {
			t.Errorf("got offsets %v size %d, want pt at 4 and size 12", info.Offsets, info.Size)
		}
	})
}

func TestCalculateTuple(t *testing.T) {
	c := NewCalculator()
	typedef := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U16{}, wit.U32{}}}}
	info, err := c.Calculate(typedef)
	if err != nil {
		t.Fatal(err)
	}
	if info.Offsets[1] != 4 || info.Size != 8 || info.Align != 4 {
		t.Errorf("got %+v", info)
	}
}

func TestCalculateUnsupported(t *testing.T) {
	c := NewCalculator()
	if _, err := c.Calculate(wit.String{}); err == nil {
		t.Error("string has no fixed layout")
	}
	list := &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	if _, err := c.Calculate(list); err == nil {
		t.Error("list has no fixed layout")
	}
	rec := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "s", Type: wit.String{}}}}}
	if _, err := c.Calculate(rec); err == nil {
		t.Error("record with a string field has no fixed layout")
	}
}

func TestCalculatorCaches(t *testing.T) {
	c := NewCalculator()
	typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "v", Type: wit.U64{}}}}}
	first, _ := c.Calculate(typedef)
	if _, ok := c.cache[typedef]; !ok {
		t.Fatal("expected typedef layout to be cached")
	}
	second, _ := c.Calculate(typedef)
	if first.Size != second.Size || first.Align != second.Align {
		t.Error("cached layout differs")
	}
}
