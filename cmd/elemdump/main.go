package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec"
	"github.com/wippyai/ndcodec/dynop"
	"github.com/wippyai/ndcodec/dynop/gohost"
	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

var (
	logger = zap.NewNop()
	host   = gohost.New()
)

type options struct {
	file    string
	typ     string
	fields  string
	order   string
	reduce  string
	offset  int64
	count   int64
	verbose bool
}

func main() {
	var (
		opts        options
		interactive bool
	)
	flag.StringVar(&opts.file, "file", "", "Path to raw element data")
	flag.StringVar(&opts.typ, "type", "", "Element type (double, int, ubyte, S8, ...)")
	flag.StringVar(&opts.fields, "fields", "", "Record fields (a:s32,b:f64); overrides -type")
	flag.StringVar(&opts.order, "order", "native", "Byte order (native, swapped, little, big)")
	flag.StringVar(&opts.reduce, "reduce", "", "Fold decoded scalars with add, multiply, min or max")
	flag.Int64Var(&opts.offset, "offset", 0, "Byte offset of the first element")
	flag.Int64Var(&opts.count, "count", -1, "Number of elements (-1 for all)")
	flag.BoolVar(&interactive, "i", false, "Interactive pager")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Parse()

	if opts.file == "" || (opts.typ == "" && opts.fields == "") {
		fmt.Fprintln(os.Stderr, "Usage: elemdump -file <data.bin> -type <type> [-order native|swapped|little|big] [-offset N] [-count N]")
		fmt.Fprintln(os.Stderr, "       elemdump -file <data.bin> -fields a:s32,b:f64")
		fmt.Fprintln(os.Stderr, "       elemdump -file <data.bin> -type double -reduce add")
		fmt.Fprintln(os.Stderr, "       elemdump -file <data.bin> -type int -i  (interactive mode)")
		os.Exit(1)
	}

	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync() //nolint:errcheck
		logger = l
		codec.SetLogger(l)
		dynop.SetLogger(l)
	}

	d, err := load(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(os.Stdout, d, opts.reduce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dumper decodes consecutive elements of one file.
type dumper struct {
	reg    *codec.Registry
	arr    *codec.Array
	name   string
	offset int64
	count  int64
}

func load(opts options) (*dumper, error) {
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read file")
	}
	return newDumper(ndcodec.ByteBuffer(data), opts)
}

func newDumper(buf ndcodec.ByteBuffer, opts options) (*dumper, error) {
	reg, err := codec.Default()
	if err != nil {
		return nil, err
	}

	var d *codec.Descriptor
	if opts.fields != "" {
		d, err = parseFields(reg, opts.fields)
	} else {
		d, err = parseType(reg, opts.typ)
	}
	if err != nil {
		return nil, err
	}

	flags, err := parseOrder(opts.order)
	if err != nil {
		return nil, err
	}

	if opts.offset < 0 || opts.offset > buf.Len() {
		return nil, errors.OutOfBounds(errors.PhaseLoad, opts.offset, 0, len(buf))
	}
	count := (buf.Len() - opts.offset) / d.Size
	if opts.count >= 0 && opts.count < count {
		count = opts.count
	}

	logger.Debug("elements loaded",
		zap.String("type", describe(d)),
		zap.Int64("offset", opts.offset),
		zap.Int64("count", count),
	)

	return &dumper{
		reg:    reg,
		arr:    &codec.Array{Buf: buf, Descr: d, Flags: flags | alignedFlag(d, opts.offset)},
		name:   opts.file,
		offset: opts.offset,
		count:  count,
	}, nil
}

func (d *dumper) element(i int64) (any, error) {
	return d.reg.Decode(d.offset+i*d.arr.Descr.Size, d.arr)
}

func (d *dumper) line(i int64) string {
	v, err := d.element(i)
	if err != nil {
		return fmt.Sprintf("[%d] error: %v", i, err)
	}
	return fmt.Sprintf("[%d] %s", i, format(v))
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case codec.Tuple:
		s := "("
		for i, f := range x {
			if i > 0 {
				s += ", "
			}
			s += format(f)
		}
		return s + ")"
	}
	return fmt.Sprint(v)
}

func dump(w io.Writer, d *dumper, reduce string) error {
	fmt.Fprintf(w, "# %s %s, %d elements at offset %d\n", d.name, describe(d.arr.Descr), d.count, d.offset)
	for i := int64(0); i < d.count; i++ {
		fmt.Fprintln(w, d.line(i))
	}
	if reduce == "" {
		return nil
	}
	v, err := d.fold(reduce)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s = %s\n", reduce, format(v))
	return nil
}

// fold combines every element with a bridge operation.
func (d *dumper) fold(name string) (any, error) {
	b, err := dynop.Bind(host)
	if err != nil {
		return nil, err
	}
	ops := b.Ops()
	var op dynop.BinaryOp
	switch name {
	case "add":
		op = ops.Add
	case "multiply":
		op = ops.Multiply
	case "min":
		op = ops.Min
	case "max":
		op = ops.Max
	default:
		return nil, errors.UnsupportedOperation(errors.PhaseBridge, name)
	}
	if d.count == 0 {
		return nil, errors.InvalidInput(errors.PhaseBridge, "nothing to reduce")
	}

	table := b.Handles()
	var acc resource.Handle
	defer func() { table.Release(acc) }() //nolint:errcheck
	for i := int64(0); i < d.count; i++ {
		v, err := d.element(i)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errors.WithPath(errors.InvalidInput(errors.PhaseBridge, "empty element"), fmt.Sprintf("[%d]", i))
		}
		h, err := b.Box(v)
		if err != nil {
			return nil, err
		}
		if acc == 0 {
			acc = h
			continue
		}
		next, err := op(acc, h)
		table.Release(h) //nolint:errcheck
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		table.Release(acc) //nolint:errcheck
		acc = next
	}
	return b.Value(acc)
}
