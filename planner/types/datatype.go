package types

import (
	"fmt"
	"strings"
)

const (
	BaseTypeBool      = "bool"
	BaseTypeDecimal   = "decimal"
	BaseTypeID        = "id"
	BaseTypeInt       = "int"
	BaseTypeString    = "string"
	BaseTypeTimestamp = "timestamp"
	BaseTypeVoid      = "void"
)

func IsValidTypeName(typeName string) bool {
	switch strings.ToLower(typeName) {
	case BaseTypeBool,
		BaseTypeDecimal,
		BaseTypeID,
		BaseTypeInt,
		BaseTypeString,
		BaseTypeTimestamp:
		return true
	default:
		return false
	}
}

// ExprDataType is the interface for all plan layer types
type ExprDataType interface {
	exprDataType()
	// the base type name e.g. int or decimal
	BaseTypeName() string
	// the full type specification as a string - intended to be human readable
	TypeDescription() string
}

func (*DataTypeVoid) exprDataType()      {}
func (*DataTypeBool) exprDataType()      {}
func (*DataTypeDecimal) exprDataType()   {}
func (*DataTypeID) exprDataType()        {}
func (*DataTypeInt) exprDataType()       {}
func (*DataTypeString) exprDataType()    {}
func (*DataTypeTimestamp) exprDataType() {}

type DataTypeVoid struct {
}

func NewDataTypeVoid() *DataTypeVoid {
	return &DataTypeVoid{}
}

func (d *DataTypeVoid) BaseTypeName() string {
	return BaseTypeVoid
}

func (d *DataTypeVoid) TypeDescription() string {
	return d.BaseTypeName()
}

type DataTypeBool struct {
}

func NewDataTypeBool() *DataTypeBool {
	return &DataTypeBool{}
}

func (d *DataTypeBool) BaseTypeName() string {
	return BaseTypeBool
}

func (d *DataTypeBool) TypeDescription() string {
	return d.BaseTypeName()
}

type DataTypeDecimal struct {
	Scale int64
}

func NewDataTypeDecimal(scale int64) *DataTypeDecimal {
	return &DataTypeDecimal{
		Scale: scale,
	}
}

func (d *DataTypeDecimal) BaseTypeName() string {
	return BaseTypeDecimal
}

func (d *DataTypeDecimal) TypeDescription() string {
	return fmt.Sprintf("%s(%d)", d.BaseTypeName(), d.Scale)
}

type DataTypeID struct {
}

func NewDataTypeID() *DataTypeID {
	return &DataTypeID{}
}

func (d *DataTypeID) BaseTypeName() string {
	return BaseTypeID
}

func (d *DataTypeID) TypeDescription() string {
	return d.BaseTypeName()
}

type DataTypeInt struct {
}

func NewDataTypeInt() *DataTypeInt {
	return &DataTypeInt{}
}

func (d *DataTypeInt) BaseTypeName() string {
	return BaseTypeInt
}

func (d *DataTypeInt) TypeDescription() string {
	return d.BaseTypeName()
}

type DataTypeString struct {
}

func NewDataTypeString() *DataTypeString {
	return &DataTypeString{}
}

func (d *DataTypeString) BaseTypeName() string {
	return BaseTypeString
}

func (d *DataTypeString) TypeDescription() string {
	return d.BaseTypeName()
}

type DataTypeTimestamp struct {
}

func NewDataTypeTimestamp() *DataTypeTimestamp {
	return &DataTypeTimestamp{}
}

func (d *DataTypeTimestamp) BaseTypeName() string {
	return BaseTypeTimestamp
}

func (d *DataTypeTimestamp) TypeDescription() string {
	return d.BaseTypeName()
}
