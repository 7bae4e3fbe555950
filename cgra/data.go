package cgra

import "encoding/binary"

// Data is a value that flows through the tile. A Data whose Pred is false is
// invalid and its payload must not be trusted by the consumer.
type Data struct {
	Value uint32
	Pred  bool
}

// NewScalar creates a Data that wraps a single uint32 value with Pred=true by default.
func NewScalar(v uint32) Data {
	return Data{Value: v, Pred: true}
}

// NewScalarWithPred creates a Data with an explicit predicate.
func NewScalarWithPred(v uint32, pred bool) Data {
	return Data{Value: v, Pred: pred}
}

// Invalid returns a Data with the predicate cleared.
func Invalid() Data {
	return Data{}
}

// WithPred returns a copy with the given predicate flag.
func (d Data) WithPred(pred bool) Data {
	d.Pred = pred
	return d
}

// Masked truncates the payload to the given bit width.
func (d Data) Masked(width int) Data {
	d.Value &= WidthMask(width)
	return d
}

// WidthMask returns the mask that keeps the low width bits of a payload.
func WidthMask(width int) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}

	return uint32(1)<<uint(width) - 1
}

// BytesFromUint32 encodes a payload the way memory stores it.
func BytesFromUint32(data uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, data)
}

// Uint32FromBytes decodes a payload from its memory bytes.
func Uint32FromBytes(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}
