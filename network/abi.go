package network

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// elrondAbi is the part of a MultiversX contract ABI file needed to check calls
type elrondAbi struct {
	Name      string `json:"name"`
	Endpoints []struct {
		Name   string `json:"name"`
		Inputs []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"inputs"`
	} `json:"endpoints"`
}

// LoadElrondAbi returns the input types of every endpoint, keyed by endpoint name
func LoadElrondAbi(raw []byte) (map[string][]string, error) {
	a := elrondAbi{}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal abi JSON: %w", err)
	}
	if len(a.Endpoints) == 0 {
		return nil, errors.New("abi declares no endpoints")
	}

	endpoints := make(map[string][]string, len(a.Endpoints))
	for _, e := range a.Endpoints {
		types := make([]string, 0, len(e.Inputs))
		for _, in := range e.Inputs {
			types = append(types, in.Type)
		}
		endpoints[e.Name] = types
	}

	return endpoints, nil
}

// callData builds "operation@arg1@arg2" checking args against the endpoint inputs
func callData(endpoints map[string][]string, operation string, args []interface{}) (string, error) {
	inputs, ok := endpoints[operation]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}
	if len(inputs) != len(args) {
		return "", fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgumentMismatch, operation, len(inputs), len(args))
	}

	var sb strings.Builder
	sb.WriteString(operation)
	for i, arg := range args {
		encoded, err := encodeElrondArg(inputs[i], arg)
		if err != nil {
			return "", fmt.Errorf("%w: argument %d of %s: %v", ErrArgumentMismatch, i, operation, err)
		}
		sb.WriteString("@")
		sb.WriteString(encoded)
	}

	return sb.String(), nil
}

// encodeElrondArg hex encodes one argument using top-level encoding
func encodeElrondArg(typ string, arg interface{}) (string, error) {
	if _, isBool := arg.(bool); isBool != (typ == "bool") {
		return "", fmt.Errorf("can not use %T as %s", arg, typ)
	}

	switch v := arg.(type) {
	case bool:
		if v {
			return "01", nil
		}
		return "", nil
	case uint8:
		return encodeBigInt(new(big.Int).SetUint64(uint64(v)))
	case uint16:
		return encodeBigInt(new(big.Int).SetUint64(uint64(v)))
	case uint32:
		return encodeBigInt(new(big.Int).SetUint64(uint64(v)))
	case uint64:
		return encodeBigInt(new(big.Int).SetUint64(v))
	case uint:
		return encodeBigInt(new(big.Int).SetUint64(uint64(v)))
	case int:
		return encodeBigInt(big.NewInt(int64(v)))
	case int64:
		return encodeBigInt(big.NewInt(v))
	case *big.Int:
		return encodeBigInt(v)
	case string:
		return hex.EncodeToString([]byte(v)), nil
	case []byte:
		return hex.EncodeToString(v), nil
	default:
		return "", fmt.Errorf("unsupported argument type %T", arg)
	}
}

func encodeBigInt(v *big.Int) (string, error) {
	if v == nil || v.Sign() < 0 {
		return "", errors.New("only non-negative integers are supported")
	}

	return hex.EncodeToString(v.Bytes()), nil
}
