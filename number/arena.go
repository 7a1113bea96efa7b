package number

import "elarith/object"

// ValueOf extracts an owned copy of the number held by obj. Host
// integers outside the fixnum range are extracted as bignums.
func ValueOf(a object.Arena, obj object.Object) (Value, error) {
	switch t := a.Tag(obj); t {
	case object.TagInt:
		return Int(a.Int(obj)), nil
	case object.TagFloat:
		return Float(a.Float(obj)), nil
	case object.TagBig:
		return adoptBig(a.Big(obj)).narrow(), nil
	default:
		return Value{}, WrongType("numberp", t)
	}
}

// ValuesOf extracts every element of objs, failing on the first
// non-number.
func ValuesOf(a object.Arena, objs []object.Object) ([]Value, error) {
	vals := make([]Value, len(objs))
	for i, obj := range objs {
		v, err := ValueOf(a, obj)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// FixnumOf extracts a fixnum, rejecting floats and bignums.
func FixnumOf(a object.Arena, obj object.Object) (int64, error) {
	v, err := ValueOf(a, obj)
	if err != nil {
		return 0, WrongType("fixnump", a.Tag(obj))
	}
	if v.kind != KindInt {
		return 0, WrongType("fixnump", v)
	}
	return v.i, nil
}

// Materialize hands v to the arena: fixnums become immediates, floats
// and bignums heap objects.
func (v Value) Materialize(a object.Arena) object.Object {
	switch v.kind {
	case KindInt:
		return a.FromInt(v.i)
	case KindFloat:
		return a.AddFloat(v.f)
	case KindBig:
		return a.AddBig(v.b)
	}
	panic("number: invalid kind " + v.kind.String())
}
