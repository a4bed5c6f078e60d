package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKinds(t *testing.T) {
	n := NumberValue(2.5)
	assert.True(t, n.IsNumber())
	v, ok := n.Number()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	assert.Equal(t, "2.5", n.String())

	s := TextValue("hello")
	assert.True(t, s.IsText())
	txt, ok := s.Text()
	assert.True(t, ok)
	assert.Equal(t, "hello", txt)
	assert.Equal(t, "hello", s.String())

	e := ErrorValue(ErrArithmetic)
	assert.True(t, e.IsError())
	fe, ok := e.FormulaErr()
	assert.True(t, ok)
	assert.Equal(t, ErrArithmetic, fe.Category)
	assert.Equal(t, "#ARITHM!", e.String())
}

func TestFormulaErrorTokens(t *testing.T) {
	assert.Equal(t, "#REF!", FormulaError{Category: ErrRef}.String())
	assert.Equal(t, "#VALUE!", FormulaError{Category: ErrValue}.String())
	assert.Equal(t, "#ARITHM!", FormulaError{Category: ErrArithmetic}.String())
}

func TestValueAsNumber(t *testing.T) {
	n, ferr := NumberValue(3).asNumber()
	assert.Nil(t, ferr)
	assert.Equal(t, 3.0, n)

	n, ferr = TextValue("3.5").asNumber()
	assert.Nil(t, ferr)
	assert.Equal(t, 3.5, n)

	_, ferr = TextValue("3.5abc").asNumber()
	assert.NotNil(t, ferr)
	assert.Equal(t, ErrValue, ferr.Category)

	_, ferr = ErrorValue(ErrRef).asNumber()
	assert.NotNil(t, ferr)
	assert.Equal(t, ErrRef, ferr.Category)
}
