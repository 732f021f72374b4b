package ipc

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-sh/tempo/timer"
)

func TestClientMsgRoundTrip(t *testing.T) {
	kinds := []ClientMsgKind{
		KindQuit,
		KindReset,
		KindPlayPause,
		KindSkip,
		KindPostpone,
		KindDetach,
		KindSync,
	}

	var buf bytes.Buffer

	for _, k := range kinds {
		require.NoError(t, Write(&buf, ClientMsg{Kind: k}))
	}

	for _, k := range kinds {
		msg, err := ReadClientMsg(&buf)
		require.NoError(t, err)
		assert.Equal(t, k, msg.Kind)
	}

	// a clean end of stream surfaces as io.EOF
	_, err := ReadClientMsg(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestServerMsgRoundTrip(t *testing.T) {
	view := timer.ViewState{
		Kind:          timer.KindLongBreak,
		IsBreak:       true,
		Round:         4,
		Remaining:     "14:59",
		PostponeCount: 0,
	}

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, ServerMsg{Kind: KindTimer, Timer: &view}))

	var got ServerMsg

	require.NoError(t, Read(&buf, &got))
	assert.Equal(t, KindTimer, got.Kind)
	require.NotNil(t, got.Timer)
	assert.Equal(t, view, *got.Timer)
}

func TestUnknownKindRejected(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, ClientMsg{Kind: "explode"}))

	_, err := ReadClientMsg(&buf)
	assert.ErrorContains(t, err, "unknown client message kind")
}

func TestOversizeFrameRejected(t *testing.T) {
	var buf bytes.Buffer

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], MaxFrameSize+1)
	buf.Write(header[:])

	var msg ClientMsg

	err := Read(&buf, &msg)
	assert.ErrorIs(t, err, errFrameTooLarge)
}

func TestEmptyFrameRejected(t *testing.T) {
	var msg ClientMsg

	err := Read(bytes.NewReader(make([]byte, 4)), &msg)
	assert.ErrorIs(t, err, errEmptyFrame)
}

func TestTruncatedFrameRejected(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, ClientMsg{Kind: KindSync}))

	truncated := buf.Bytes()[:buf.Len()-2]

	var msg ClientMsg

	err := Read(bytes.NewReader(truncated), &msg)
	assert.ErrorContains(t, err, "short frame")
}

func TestKindActionMapping(t *testing.T) {
	testCases := []struct {
		kind   ClientMsgKind
		action timer.Action
		ok     bool
	}{
		{KindReset, timer.ActionReset, true},
		{KindPlayPause, timer.ActionPlayPause, true},
		{KindSkip, timer.ActionSkip, true},
		{KindPostpone, timer.ActionPostponeBreak, true},
		{KindQuit, timer.ActionNone, false},
		{KindDetach, timer.ActionNone, false},
		{KindSync, timer.ActionNone, false},
	}

	for _, tc := range testCases {
		action, ok := tc.kind.Action()
		assert.Equal(t, tc.action, action, "kind %s", tc.kind)
		assert.Equal(t, tc.ok, ok, "kind %s", tc.kind)
	}
}
