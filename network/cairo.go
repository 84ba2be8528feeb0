package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
)

const (
	cairoBool = "core::bool"
	cairoU256 = "core::integer::u256"
)

var (
	feltBound    = new(big.Int).Lsh(big.NewInt(1), 251)
	u128Mask     = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	errNegative  = errors.New("negative value")
	errTooLarge  = errors.New("value does not fit the parameter type")
	errNoAbiItem = errors.New("abi declares no functions")
)

type cairoAbiItem struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Inputs []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"inputs"`
	Items []cairoAbiItem `json:"items"`
}

// LoadCairoAbi returns the input types of every external function, read from a
// bare ABI array or a contract class holding it under "abi" (as JSON or as a string)
func LoadCairoAbi(raw []byte) (map[string][]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var class struct {
			Abi json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(raw, &class); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contract class JSON: %w", err)
		}
		raw = bytes.TrimSpace(class.Abi)
		if len(raw) > 0 && raw[0] == '"' {
			var inner string
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, err
			}
			raw = []byte(inner)
		}
	}

	var items []cairoAbiItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal abi JSON: %w", err)
	}

	functions := make(map[string][]string)
	var collect func(items []cairoAbiItem)
	collect = func(items []cairoAbiItem) {
		for _, item := range items {
			switch item.Type {
			case "function":
				types := make([]string, 0, len(item.Inputs))
				for _, in := range item.Inputs {
					types = append(types, in.Type)
				}
				functions[item.Name] = types
			case "interface":
				collect(item.Items)
			}
		}
	}
	collect(items)

	if len(functions) == 0 {
		return nil, errNoAbiItem
	}

	return functions, nil
}

// cairoCallData checks args against the function inputs and serializes them to felts
func cairoCallData(functions map[string][]string, operation string, args []interface{}) ([]*felt.Felt, error) {
	inputs, ok := functions[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgumentMismatch, operation, len(inputs), len(args))
	}

	calldata := make([]*felt.Felt, 0, len(args))
	for i, arg := range args {
		felts, err := encodeCairoArg(inputs[i], arg)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of %s: %v", ErrArgumentMismatch, i, operation, err)
		}
		calldata = append(calldata, felts...)
	}

	return calldata, nil
}

func encodeCairoArg(typ string, arg interface{}) ([]*felt.Felt, error) {
	b, isBool := arg.(bool)
	if (typ == cairoBool) != isBool {
		return nil, fmt.Errorf("%T can not encode %s", arg, typ)
	}
	if isBool {
		if b {
			return []*felt.Felt{new(felt.Felt).SetUint64(1)}, nil
		}
		return []*felt.Felt{new(felt.Felt).SetUint64(0)}, nil
	}

	if f, ok := arg.(*felt.Felt); ok {
		if typ == cairoU256 {
			return nil, fmt.Errorf("felt can not encode %s", typ)
		}
		return []*felt.Felt{f}, nil
	}

	n, err := toBigInt(arg)
	if err != nil {
		return nil, err
	}

	if typ == cairoU256 {
		if n.BitLen() > 256 {
			return nil, errTooLarge
		}
		low := new(big.Int).And(n, u128Mask)
		high := new(big.Int).Rsh(n, 128)
		return []*felt.Felt{new(felt.Felt).SetBigInt(low), new(felt.Felt).SetBigInt(high)}, nil
	}
	if n.Cmp(feltBound) >= 0 {
		return nil, errTooLarge
	}

	return []*felt.Felt{new(felt.Felt).SetBigInt(n)}, nil
}

func toBigInt(arg interface{}) (*big.Int, error) {
	var n *big.Int
	switch v := arg.(type) {
	case *big.Int:
		if v == nil {
			return nil, errors.New("nil integer")
		}
		n = new(big.Int).Set(v)
	case int:
		n = big.NewInt(int64(v))
	case int8:
		n = big.NewInt(int64(v))
	case int16:
		n = big.NewInt(int64(v))
	case int32:
		n = big.NewInt(int64(v))
	case int64:
		n = big.NewInt(v)
	case uint:
		n = new(big.Int).SetUint64(uint64(v))
	case uint8:
		n = new(big.Int).SetUint64(uint64(v))
	case uint16:
		n = new(big.Int).SetUint64(uint64(v))
	case uint32:
		n = new(big.Int).SetUint64(uint64(v))
	case uint64:
		n = new(big.Int).SetUint64(v)
	default:
		return nil, fmt.Errorf("unsupported argument type %T", arg)
	}
	if n.Sign() < 0 {
		return nil, errNegative
	}

	return n, nil
}
