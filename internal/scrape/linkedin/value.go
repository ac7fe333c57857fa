package linkedin

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// Kind tags a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

// Value is a decoded JSON document that keeps object member order, which
// map[string]any would lose. Str holds the string value, or the raw literal
// for numbers.
type Value struct {
	Kind    Kind
	Bool    bool
	Str     string
	Items   []Value
	Members []Member
}

type Member struct {
	Key   string
	Value Value
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func ListValue(items ...Value) Value { return Value{Kind: KindList, Items: items} }

func ObjectValue(members ...Member) Value { return Value{Kind: KindObject, Members: members} }

// Get looks up a member of an object. Non-objects have no members.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Lookup follows a path of object keys.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, k := range path {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Truthy mirrors loose truthiness: null, false, 0, "", [] and {} are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		f, err := strconv.ParseFloat(v.Str, 64)
		return err != nil || f != 0
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.Items) > 0
	case KindObject:
		return len(v.Members) > 0
	default:
		return false
	}
}

var errTrailingData = errors.New("trailing data after JSON value")

// ParseValue decodes exactly one JSON value from text. Duplicate object keys
// keep their first position and last value.
func ParseValue(text string) (Value, error) {
	dec := jsontext.NewDecoder(strings.NewReader(text),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	v, err := readValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Value{}, err
	}
	return v, nil
}

func readValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}
	switch tok.Kind() {
	case 'n':
		return Value{Kind: KindNull}, nil
	case 't', 'f':
		return Value{Kind: KindBool, Bool: tok.Bool()}, nil
	case '"':
		return StringValue(tok.String()), nil
	case '0':
		return Value{Kind: KindNumber, Str: tok.String()}, nil
	case '[':
		list := Value{Kind: KindList}
		for dec.PeekKind() != ']' {
			item, err := readValue(dec)
			if err != nil {
				return Value{}, err
			}
			list.Items = append(list.Items, item)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return list, nil
	case '{':
		obj := Value{Kind: KindObject}
		pos := map[string]int{}
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			key := keyTok.String()
			val, err := readValue(dec)
			if err != nil {
				return Value{}, err
			}
			if i, dup := pos[key]; dup {
				obj.Members[i].Value = val
				continue
			}
			pos[key] = len(obj.Members)
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return obj, nil
	default:
		return Value{}, errors.New("unexpected token " + strconv.QuoteRune(rune(tok.Kind())))
	}
}
