package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRequestDefaults(t *testing.T) {
	req := NewSelectRequest(1, 2, []Tuple{MustTuple(uint32(5))}, nil)

	assert.Equal(t, OpSelect, req.Op)
	assert.Equal(t, uint32(0), req.Offset)
	assert.Equal(t, LimitUnbounded, req.Limit)
	assert.NoError(t, req.Validate())
}

func TestSelectRequestOptions(t *testing.T) {
	req := NewSelectRequest(1, 0, []Tuple{MustTuple(uint32(5))},
		&SelectOptions{Offset: 10, Limit: 20})

	assert.Equal(t, uint32(10), req.Offset)
	assert.Equal(t, uint32(20), req.Limit)
}

func TestMutateRequestShape(t *testing.T) {
	req := NewInsertRequest(0, MustTuple(uint32(1), "x"), &MutateOptions{ReturnTuple: true})

	require.NoError(t, req.Validate())
	assert.True(t, req.ReturnTuple)
	assert.Equal(t, RequestTypeInsert, req.Op.Type())
}

func TestDeleteHasOwnRequestType(t *testing.T) {
	req := NewDeleteRequest(0, MustTuple(uint32(1)), nil)

	require.NoError(t, req.Validate())
	assert.Equal(t, RequestTypeDelete, req.Op.Type())
	assert.NotEqual(t, NewReplaceRequest(0, MustTuple(uint32(1)), nil).Op.Type(), req.Op.Type())
}

func TestValidateRejectsBadShapes(t *testing.T) {
	cases := map[string]*Request{
		"select without keys":  NewSelectRequest(0, 0, nil, nil),
		"select empty key":     NewSelectRequest(0, 0, []Tuple{{}}, nil),
		"insert empty tuple":   NewInsertRequest(0, Tuple{}, nil),
		"delete empty key":     NewDeleteRequest(0, Tuple{}, nil),
		"call without proc":    NewCallRequest("", nil),
		"insert two tuples":    {Op: OpInsert, Tuples: []Tuple{MustTuple(1), MustTuple(2)}},
		"unknown operation":    {Op: OpUnknown},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			err := req.Validate()
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPingAndCallValidate(t *testing.T) {
	assert.NoError(t, NewPingRequest().Validate())
	// A call with no arguments is valid.
	assert.NoError(t, NewCallRequest("box.dostring", nil).Validate())
}
