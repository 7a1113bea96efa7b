// Package elisp registers the numeric and character primitives with the
// golisp evaluator and adapts the golisp heap to object.Arena.
package elisp

import (
	"github.com/steelseries/golisp"

	"elarith/arith"
	"elarith/character"
	"elarith/number"
	"elarith/object"
)

type primitiveImpl func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error)

type primitives struct {
	arena *Arena
}

// Install binds the primitives and the fixnum limits in the golisp global
// environment. Every value the primitives build goes through arena.
func Install(arena *Arena) {
	p := &primitives{arena: arena}

	golisp.Global.BindToProtected(golisp.Intern("t"), golisp.BooleanWithValue(true))
	golisp.Global.BindToProtected(golisp.Intern("most-positive-fixnum"), golisp.IntegerWithValue(number.MaxFixnum))
	golisp.Global.BindToProtected(golisp.Intern("most-negative-fixnum"), golisp.IntegerWithValue(number.MinFixnum))

	golisp.MakePrimitiveFunction("+", "*", p.addImpl)
	golisp.MakePrimitiveFunction("-", "*", p.subImpl)
	golisp.MakePrimitiveFunction("*", "*", p.mulImpl)
	golisp.MakePrimitiveFunction("/", ">=1", p.divImpl)
	golisp.MakePrimitiveFunction("1+", "1", p.addOneImpl)
	golisp.MakePrimitiveFunction("1-", "1", p.subOneImpl)
	golisp.MakePrimitiveFunction(addOneAlias, "1", p.addOneImpl)
	golisp.MakePrimitiveFunction(subOneAlias, "1", p.subOneImpl)
	golisp.MakePrimitiveFunction("=", ">=1", p.compareImpl(arith.Equal))
	golisp.MakePrimitiveFunction("/=", ">=1", p.compareImpl(arith.NotEqual))
	golisp.MakePrimitiveFunction("<", ">=1", p.compareImpl(arith.Less))
	golisp.MakePrimitiveFunction("<=", ">=1", p.compareImpl(arith.LessEqual))
	golisp.MakePrimitiveFunction(">", ">=1", p.compareImpl(arith.Greater))
	golisp.MakePrimitiveFunction(">=", ">=1", p.compareImpl(arith.GreaterEqual))
	golisp.MakePrimitiveFunction("mod", "2", p.modImpl)
	golisp.MakePrimitiveFunction("%", "2", p.remImpl)
	golisp.MakePrimitiveFunction("max", ">=1", p.extremeImpl(arith.Max))
	golisp.MakePrimitiveFunction("min", ">=1", p.extremeImpl(arith.Min))
	golisp.MakePrimitiveFunction("logior", "*", p.bitwiseImpl(arith.LogIor))
	golisp.MakePrimitiveFunction("logand", "*", p.bitwiseImpl(arith.LogAnd))
	golisp.MakePrimitiveFunction("logxor", "*", p.bitwiseImpl(arith.LogXor))

	golisp.MakePrimitiveFunction(floatLiteral, "1", p.floatLiteralImpl)

	golisp.MakePrimitiveFunction("numberp", "1", p.numberpImpl)
	golisp.MakePrimitiveFunction("integerp", "1", p.tagPredicate(object.TagInt, object.TagBig))
	golisp.MakePrimitiveFunction("fixnump", "1", p.tagPredicate(object.TagInt))
	golisp.MakePrimitiveFunction("bignump", "1", p.tagPredicate(object.TagBig))
	golisp.MakePrimitiveFunction("floatp", "1", p.tagPredicate(object.TagFloat))
	golisp.MakePrimitiveFunction("truncate", "1", p.truncateImpl)
	golisp.MakePrimitiveFunction("float", "1", p.floatImpl)

	golisp.MakePrimitiveFunction("characterp", "1", p.characterpImpl)
	golisp.MakePrimitiveFunction("max-char", "0|1", p.maxCharImpl)
	golisp.MakePrimitiveFunction("string", "*", p.stringImpl)
	golisp.MakePrimitiveFunction("unibyte-string", "*", p.unibyteStringImpl)
	golisp.MakePrimitiveFunction("make-string", "2|3", p.makeStringImpl)
}

// Names the reader rewrites 1+ and 1- to, since golisp would otherwise
// read them as numbers.
const (
	addOneAlias = "el-1+"
	subOneAlias = "el-1-"
)

// floatLiteral is the procedure the reader wraps decimal float literals
// in. golisp reads floats in single precision; the literal text is parsed
// here as a double instead.
const floatLiteral = "el-float"

func objects(args *golisp.Data) []object.Object {
	items := golisp.ToArray(args)
	objs := make([]object.Object, len(items))
	for i, d := range items {
		objs[i] = d
	}
	return objs
}

func (p *primitives) numbers(args *golisp.Data) ([]number.Value, error) {
	return number.ValuesOf(p.arena, objects(args))
}

func (p *primitives) fixnums(args *golisp.Data) ([]int64, error) {
	objs := objects(args)
	ints := make([]int64, len(objs))
	for i, obj := range objs {
		n, err := number.FixnumOf(p.arena, obj)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	return ints, nil
}

func (p *primitives) result(v number.Value) *golisp.Data {
	return v.Materialize(p.arena).(*golisp.Data)
}

func (p *primitives) boolean(b bool) *golisp.Data {
	return p.arena.FromBool(b).(*golisp.Data)
}

func (p *primitives) addImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	nums, err := p.numbers(args)
	if err != nil {
		return nil, signal(err)
	}
	return p.result(arith.Add(nums)), nil
}

func (p *primitives) subImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	nums, err := p.numbers(args)
	if err != nil {
		return nil, signal(err)
	}
	if len(nums) == 0 {
		return p.result(arith.Sub(nil, nil)), nil
	}
	return p.result(arith.Sub(&nums[0], nums[1:])), nil
}

func (p *primitives) mulImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	nums, err := p.numbers(args)
	if err != nil {
		return nil, signal(err)
	}
	return p.result(arith.Mul(nums)), nil
}

func (p *primitives) divImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	nums, err := p.numbers(args)
	if err != nil {
		return nil, signal(err)
	}
	v, err := arith.Div(nums[0], nums[1:])
	if err != nil {
		return nil, signal(err)
	}
	return p.result(v), nil
}

func (p *primitives) addOneImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := number.ValueOf(p.arena, golisp.Car(args))
	if err != nil {
		return nil, signal(err)
	}
	return p.result(arith.AddOne(n)), nil
}

func (p *primitives) subOneImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := number.ValueOf(p.arena, golisp.Car(args))
	if err != nil {
		return nil, signal(err)
	}
	return p.result(arith.SubOne(n)), nil
}

func (p *primitives) compareImpl(rel func(number.Value, []number.Value) bool) primitiveImpl {
	return func(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
		nums, err := p.numbers(args)
		if err != nil {
			return nil, signal(err)
		}
		return p.boolean(rel(nums[0], nums[1:])), nil
	}
}

func (p *primitives) extremeImpl(pick func(number.Value, []number.Value) number.Value) primitiveImpl {
	return func(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
		nums, err := p.numbers(args)
		if err != nil {
			return nil, signal(err)
		}
		return p.result(pick(nums[0], nums[1:])), nil
	}
}

func (p *primitives) modImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	nums, err := p.numbers(args)
	if err != nil {
		return nil, signal(err)
	}
	v, err := arith.Mod(nums[0], nums[1])
	if err != nil {
		return nil, signal(err)
	}
	return p.result(v), nil
}

func (p *primitives) remImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	ints, err := p.fixnums(args)
	if err != nil {
		return nil, signal(err)
	}
	r, err := arith.Rem(ints[0], ints[1])
	if err != nil {
		return nil, signal(err)
	}
	return golisp.IntegerWithValue(r), nil
}

func (p *primitives) bitwiseImpl(fold func([]int64) int64) primitiveImpl {
	return func(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
		ints, err := p.fixnums(args)
		if err != nil {
			return nil, signal(err)
		}
		return p.result(number.Int(fold(ints))), nil
	}
}

func (p *primitives) floatLiteralImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	obj := golisp.Car(args)
	if t := p.arena.Tag(obj); t != object.TagString {
		return nil, signal(number.WrongType("stringp", t))
	}
	f, err := number.ParseFloat(p.arena.Text(obj))
	if err != nil {
		return nil, signal(err)
	}
	return p.result(number.Float(f)), nil
}

func (p *primitives) numberpImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return p.boolean(p.arena.Tag(golisp.Car(args)).IsNumber()), nil
}

func (p *primitives) tagPredicate(tags ...object.Tag) primitiveImpl {
	return func(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
		t := p.arena.Tag(golisp.Car(args))
		for _, want := range tags {
			if t == want {
				return p.boolean(true), nil
			}
		}
		return p.boolean(false), nil
	}
}

func (p *primitives) truncateImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := number.ValueOf(p.arena, golisp.Car(args))
	if err != nil {
		return nil, signal(err)
	}
	v, err := number.CoerceInteger(n)
	if err != nil {
		return nil, signal(err)
	}
	return p.result(v), nil
}

func (p *primitives) floatImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := number.ValueOf(p.arena, golisp.Car(args))
	if err != nil {
		return nil, signal(err)
	}
	return p.result(number.ToFloat(n)), nil
}

func (p *primitives) characterpImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	obj := golisp.Car(args)
	ok := p.arena.Tag(obj) == object.TagInt && character.IsCharacter(p.arena.Int(obj))
	return p.boolean(ok), nil
}

func (p *primitives) maxCharImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	unicode := golisp.NotNilP(args) && p.arena.Truthy(golisp.Car(args))
	return golisp.IntegerWithValue(character.MaxCharacter(unicode)), nil
}

func (p *primitives) stringImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	points, err := p.fixnums(args)
	if err != nil {
		return nil, signal(err)
	}
	s, err := character.String(points)
	if err != nil {
		return nil, signal(err)
	}
	return p.arena.AddText(s).(*golisp.Data), nil
}

func (p *primitives) unibyteStringImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	values, err := p.fixnums(args)
	if err != nil {
		return nil, signal(err)
	}
	b, err := character.UnibyteString(values)
	if err != nil {
		return nil, signal(err)
	}
	return p.arena.AddBytes(b).(*golisp.Data), nil
}

func (p *primitives) makeStringImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	objs := objects(args)
	length, err := number.FixnumOf(p.arena, objs[0])
	if err != nil {
		return nil, signal(err)
	}
	fill, err := number.FixnumOf(p.arena, objs[1])
	if err != nil {
		return nil, signal(err)
	}
	multibyte := len(objs) > 2 && p.arena.Truthy(objs[2])
	buf, err := character.MakeString(length, fill, multibyte)
	if err != nil {
		return nil, signal(err)
	}
	if buf.Multibyte {
		return p.arena.AddText(buf.Text()).(*golisp.Data), nil
	}
	return p.arena.AddBytes(buf.Data).(*golisp.Data), nil
}
