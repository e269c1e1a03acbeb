// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state_test

import (
	"sync"
	"testing"
	"time"

	"github.com/blinklabs-io/cairn/event"
	"github.com/blinklabs-io/cairn/fieldcodec"
	"github.com/blinklabs-io/cairn/state"
	"github.com/blinklabs-io/cairn/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOwner   = tag.Address{0x01, 0x01, 0x01}
	testAgent   = tag.Address{0x02, 0x02, 0x02}
	testGrantee = tag.Address{0x03, 0x03, 0x03}
	testSubject = tag.Address{0x04, 0x04, 0x04}

	testFieldNames = []string{"score", "label"}
	testFieldDefs  = []tag.FieldDef{
		{Type: tag.FieldTypeUint64},
		{Type: tag.FieldTypeString},
	}
	testValues = []any{uint64(86), "gold"}
)

// mapAgentResolver grants delegated write permission to a fixed set of
// caller addresses for a fixed agent address
type mapAgentResolver struct {
	agent    tag.Address
	grantees map[string]bool
}

func (r *mapAgentResolver) ResolveAgent(
	agent tag.Address,
) (state.AgentChecker, error) {
	if !agent.Equal(r.agent) {
		return nil, nil
	}
	return state.AgentCheckerFunc(
		func(
			caller tag.Address,
			classId tag.ClassId,
			object tag.TagObject,
		) (bool, error) {
			return r.grantees[caller.String()], nil
		},
	), nil
}

// testClock is an adjustable time source
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1700000000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestState(t *testing.T, cfg state.StateConfig) *state.State {
	t.Helper()
	s, err := state.NewState(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close state: %s", err)
		}
	})
	return s
}

func newTestClass(t *testing.T, s *state.State, name string) *tag.TagClass {
	t.Helper()
	testClass, err := s.NewTagClass(
		testOwner,
		name,
		testFieldNames,
		testFieldDefs,
		"test class",
		0,
		nil,
	)
	require.NoError(t, err)
	return testClass
}

func encodeTestValues(t *testing.T, values []any) []byte {
	t.Helper()
	data, err := fieldcodec.Encode(values, testFieldDefs)
	require.NoError(t, err)
	return data
}

func TestNewTagClass(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	assert.Equal(
		t,
		tag.NewClassId(testOwner, "reputation", 0),
		testClass.ClassId,
	)
	assert.Equal(t, uint64(0), testClass.Nonce)
	ret, err := s.GetTagClass(testClass.ClassId)
	require.NoError(t, err)
	assert.Equal(t, "reputation", ret.Name)
	assert.Equal(t, testFieldNames, ret.FieldNames)
	assert.Equal(t, testFieldDefs, ret.FieldDefs)
	assert.True(t, testOwner.Equal(ret.Owner))
}

func TestNewTagClassNonceIncrement(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	class1 := newTestClass(t, s, "reputation")
	class2 := newTestClass(t, s, "reputation")
	assert.Equal(t, uint64(0), class1.Nonce)
	assert.Equal(t, uint64(1), class2.Nonce)
	assert.NotEqual(t, class1.ClassId, class2.ClassId)
	// both registrations remain retrievable
	for _, classId := range []tag.ClassId{class1.ClassId, class2.ClassId} {
		ret, err := s.GetTagClass(classId)
		require.NoError(t, err)
		assert.Equal(t, "reputation", ret.Name)
	}
}

func TestNewTagClassAfterRename(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	class1 := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClassInfo(
		testOwner,
		class1.ClassId,
		"karma",
		"renamed",
	)
	require.NoError(t, err)
	// re-registering the original name must not collide with the renamed
	// class, whose ID was derived from that name
	class2 := newTestClass(t, s, "reputation")
	assert.NotEqual(t, class1.ClassId, class2.ClassId)
	for _, classId := range []tag.ClassId{class1.ClassId, class2.ClassId} {
		_, err := s.GetTagClass(classId)
		require.NoError(t, err)
	}
}

func TestNewTagClassWithFlags(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass, err := s.NewTagClass(
		testOwner,
		"retired",
		testFieldNames,
		testFieldDefs,
		"",
		tag.TagClassFlagDeprecated,
		nil,
	)
	require.NoError(t, err)
	assert.True(t, testClass.Deprecated())
	_, err = s.SetTag(
		testOwner,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
		encodeTestValues(t, testValues),
		0,
		0,
	)
	assert.ErrorIs(t, err, state.ErrDeprecated)
}

func TestNewTagClassInvalidSchema(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	_, err := s.NewTagClass(
		testOwner,
		"broken",
		[]string{"only-one-name"},
		testFieldDefs,
		"",
		0,
		nil,
	)
	assert.ErrorIs(t, err, tag.ErrSchemaMismatch)
}

func TestGetTagClassNotFound(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	_, err := s.GetTagClass(tag.NewClassId(testOwner, "missing", 0))
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestUpdateTagClassInfo(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	ret, err := s.UpdateTagClassInfo(
		testOwner,
		testClass.ClassId,
		"karma",
		"updated description",
	)
	require.NoError(t, err)
	assert.Equal(t, "karma", ret.Name)
	assert.Equal(t, "updated description", ret.Description)
	// identity, layout, and permission anchors never change here
	assert.Equal(t, testClass.ClassId, ret.ClassId)
	assert.Equal(t, testClass.FieldNames, ret.FieldNames)
	assert.Equal(t, testClass.FieldDefs, ret.FieldDefs)
	assert.True(t, testOwner.Equal(ret.Owner))
	assert.True(t, testClass.Agent.Equal(ret.Agent))
	assert.Equal(t, testClass.Nonce, ret.Nonce)
}

func TestUpdateTagClassInfoByAgent(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		testAgent,
		0,
	)
	require.NoError(t, err)
	// the current agent may update descriptive attributes
	ret, err := s.UpdateTagClassInfo(
		testAgent,
		testClass.ClassId,
		"reputation",
		"agent update",
	)
	require.NoError(t, err)
	assert.Equal(t, "agent update", ret.Description)
}

func TestUpdateTagClassInfoDenied(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClassInfo(
		testGrantee,
		testClass.ClassId,
		"reputation",
		"not allowed",
	)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
}

func TestUpdateTagClassInfoDeprecated(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		tag.TagClassFlagDeprecated,
	)
	require.NoError(t, err)
	_, err = s.UpdateTagClassInfo(
		testOwner,
		testClass.ClassId,
		"reputation",
		"too late",
	)
	assert.ErrorIs(t, err, state.ErrDeprecated)
}

func TestUpdateTagClassOwnerOnly(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		testAgent,
		0,
	)
	require.NoError(t, err)
	// the agent must not be able to rewire delegation or take ownership
	_, err = s.UpdateTagClass(
		testAgent,
		testClass.ClassId,
		testAgent,
		testGrantee,
		0,
	)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
	ret, err := s.GetTagClass(testClass.ClassId)
	require.NoError(t, err)
	assert.True(t, testOwner.Equal(ret.Owner))
	assert.True(t, testAgent.Equal(ret.Agent))
}

func TestUpdateTagClassOwnershipTransfer(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	ret, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testGrantee,
		nil,
		0,
	)
	require.NoError(t, err)
	assert.True(t, testGrantee.Equal(ret.Owner))
	// the prior owner has no remaining authority
	_, err = s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		0,
	)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
	// the new owner does
	_, err = s.UpdateTagClass(
		testGrantee,
		testClass.ClassId,
		testGrantee,
		testAgent,
		0,
	)
	require.NoError(t, err)
}

func TestUpdateTagClassFlags(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	ret, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		tag.TagClassFlagDeprecated,
	)
	require.NoError(t, err)
	assert.True(t, ret.Deprecated())
	// clearing the flag works on the deprecated class
	ret, err = s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		0,
	)
	require.NoError(t, err)
	assert.False(t, ret.Deprecated())
}

func TestSetTagAndReadBack(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	testData := encodeTestValues(t, testValues)
	testTag, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		testData,
		0,
		7,
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		tag.NewTagId(testClass.ClassId, object),
		testTag.TagId,
	)
	hasTag, err := s.HasTag(testClass.ClassId, object)
	require.NoError(t, err)
	assert.True(t, hasTag)
	data, err := s.GetTagData(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, testData, data)
	ret, err := s.GetTagByObject(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, testTag.TagId, ret.TagId)
	assert.Equal(t, uint64(0), ret.ExpiredTime)
	assert.Equal(t, uint64(7), ret.Flags)
}

func TestSetTagUnknownClass(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	_, err := s.SetTag(
		testOwner,
		tag.NewClassId(testOwner, "missing", 0),
		tag.TagObject{Address: testSubject},
		encodeTestValues(t, testValues),
		0,
		0,
	)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestSetTagOpaquePayload(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	// the store accepts payloads that do not decode under the class layout
	_, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		[]byte{0xde, 0xad},
		0,
		0,
	)
	require.NoError(t, err)
	data, err := s.GetTagData(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, data)
	// the mismatch only surfaces when a reader decodes
	_, err = s.GetTagValues(testClass.ClassId, object)
	assert.ErrorIs(t, err, fieldcodec.ErrBufferUnderrun)
}

func TestSetTagValues(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	_, err := s.SetTagValues(
		testOwner,
		testClass.ClassId,
		object,
		testValues,
		0,
		0,
	)
	require.NoError(t, err)
	values, err := s.GetTagValues(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, testValues, values)
}

func TestSetTagValuesMismatch(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.SetTagValues(
		testOwner,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
		[]any{"wrong", uint64(86)},
		0,
		0,
	)
	assert.ErrorIs(t, err, fieldcodec.ErrValueType)
	// nothing was written
	hasTag, err := s.HasTag(
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
	)
	require.NoError(t, err)
	assert.False(t, hasTag)
}

func TestSetTagOverwrite(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject, SubId: 9}
	data1 := encodeTestValues(t, testValues)
	data2 := encodeTestValues(t, []any{uint64(99), "platinum"})
	tag1, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		data1,
		0,
		0,
	)
	require.NoError(t, err)
	tag2, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		data2,
		0,
		0,
	)
	require.NoError(t, err)
	assert.Equal(t, tag1.TagId, tag2.TagId)
	data, err := s.GetTagData(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, data2, data)
}

func TestSetTagDeprecatedClass(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		tag.TagClassFlagDeprecated,
	)
	require.NoError(t, err)
	_, err = s.SetTag(
		testOwner,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
		encodeTestValues(t, testValues),
		0,
		0,
	)
	assert.ErrorIs(t, err, state.ErrDeprecated)
}

func TestSetTagDeniedWithoutAgent(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	_, err := s.SetTag(
		testGrantee,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
		encodeTestValues(t, testValues),
		0,
		0,
	)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
}

func TestSetTagByAgentGrantee(t *testing.T) {
	resolver := &mapAgentResolver{
		agent: testAgent,
		grantees: map[string]bool{
			testGrantee.String(): true,
		},
	}
	s := newTestState(t, state.StateConfig{AgentResolver: resolver})
	testClass, err := s.NewTagClass(
		testOwner,
		"reputation",
		testFieldNames,
		testFieldDefs,
		"",
		0,
		testAgent,
	)
	require.NoError(t, err)
	object := tag.TagObject{Address: testSubject}
	testData := encodeTestValues(t, testValues)
	// a caller granted by the class agent may write
	_, err = s.SetTag(testGrantee, testClass.ClassId, object, testData, 0, 0)
	require.NoError(t, err)
	// an ungranted caller may not
	_, err = s.SetTag(testSubject, testClass.ClassId, object, testData, 0, 0)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
}

func TestSetTagUnknownAgentDenies(t *testing.T) {
	resolver := &mapAgentResolver{
		agent:    tag.Address{0x0f},
		grantees: map[string]bool{},
	}
	s := newTestState(t, state.StateConfig{AgentResolver: resolver})
	testClass, err := s.NewTagClass(
		testOwner,
		"reputation",
		testFieldNames,
		testFieldDefs,
		"",
		0,
		testAgent,
	)
	require.NoError(t, err)
	// the resolver does not know this agent, so delegated writes are denied
	_, err = s.SetTag(
		testGrantee,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
		encodeTestValues(t, testValues),
		0,
		0,
	)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
}

func TestGetTagDataAbsent(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	// an absent tag is an empty payload, not an error
	data, err := s.GetTagData(
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
	)
	require.NoError(t, err)
	assert.Empty(t, data)
	values, err := s.GetTagValues(
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
	)
	require.NoError(t, err)
	assert.Empty(t, values)
	// an unknown class is still an error
	_, err = s.GetTagData(
		tag.NewClassId(testOwner, "missing", 0),
		tag.TagObject{Address: testSubject},
	)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestTagExpiry(t *testing.T) {
	clock := newTestClock()
	s := newTestState(t, state.StateConfig{NowFunc: clock.Now})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	expiredTime := uint64(clock.Now().Add(time.Hour).Unix()) //nolint:gosec
	_, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		encodeTestValues(t, testValues),
		expiredTime,
		0,
	)
	require.NoError(t, err)
	hasTag, err := s.HasTag(testClass.ClassId, object)
	require.NoError(t, err)
	assert.True(t, hasTag)
	clock.Advance(2 * time.Hour)
	// expired tags are absent to existence and data reads
	hasTag, err = s.HasTag(testClass.ClassId, object)
	require.NoError(t, err)
	assert.False(t, hasTag)
	data, err := s.GetTagData(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Empty(t, data)
	// but the stored record remains inspectable
	ret, err := s.GetTagByObject(testClass.ClassId, object)
	require.NoError(t, err)
	assert.Equal(t, expiredTime, ret.ExpiredTime)
	// and deletable
	require.NoError(t, s.DeleteTag(testOwner, testClass.ClassId, object))
}

func TestDeleteTag(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	testData := encodeTestValues(t, testValues)
	tag1, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		testData,
		0,
		0,
	)
	require.NoError(t, err)
	require.NoError(t, s.DeleteTag(testOwner, testClass.ClassId, object))
	hasTag, err := s.HasTag(testClass.ClassId, object)
	require.NoError(t, err)
	assert.False(t, hasTag)
	_, err = s.GetTagByObject(testClass.ClassId, object)
	assert.ErrorIs(t, err, state.ErrNotFound)
	// re-creating the tag reuses the same identifier
	tag2, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		testData,
		0,
		0,
	)
	require.NoError(t, err)
	assert.Equal(t, tag1.TagId, tag2.TagId)
}

func TestDeleteTagBySubject(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	_, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		encodeTestValues(t, testValues),
		0,
		0,
	)
	require.NoError(t, err)
	// the tagged subject may remove its own tag
	require.NoError(t, s.DeleteTag(testSubject, testClass.ClassId, object))
}

func TestDeleteTagDenied(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject}
	_, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		encodeTestValues(t, testValues),
		0,
		0,
	)
	require.NoError(t, err)
	err = s.DeleteTag(testGrantee, testClass.ClassId, object)
	assert.ErrorIs(t, err, state.ErrPermissionDenied)
}

func TestDeleteTagMissing(t *testing.T) {
	s := newTestState(t, state.StateConfig{})
	testClass := newTestClass(t, s, "reputation")
	err := s.DeleteTag(
		testOwner,
		testClass.ClassId,
		tag.TagObject{Address: testSubject},
	)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestStateEvents(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	s := newTestState(t, state.StateConfig{EventBus: eb})
	_, createdCh := eb.Subscribe(event.TagClassCreatedEventType)
	_, updatedCh := eb.Subscribe(event.TagClassUpdatedEventType)
	_, setCh := eb.Subscribe(event.TagSetEventType)
	_, deletedCh := eb.Subscribe(event.TagDeletedEventType)

	testClass := newTestClass(t, s, "reputation")
	object := tag.TagObject{Address: testSubject, SubId: 3}
	testTag, err := s.SetTag(
		testOwner,
		testClass.ClassId,
		object,
		encodeTestValues(t, testValues),
		0,
		5,
	)
	require.NoError(t, err)
	_, err = s.UpdateTagClass(
		testOwner,
		testClass.ClassId,
		testOwner,
		nil,
		tag.TagClassFlagDeprecated,
	)
	require.NoError(t, err)
	require.NoError(t, s.DeleteTag(testOwner, testClass.ClassId, object))

	recvEvent := func(evtCh <-chan event.Event) event.Event {
		select {
		case evt, ok := <-evtCh:
			if !ok {
				t.Fatalf("event channel closed unexpectedly")
			}
			return evt
		case <-time.After(1 * time.Second):
			t.Fatalf("timeout waiting for event")
		}
		return event.Event{}
	}

	createdEvt, ok := recvEvent(createdCh).Data.(event.TagClassCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, testClass.ClassId.Bytes(), createdEvt.ClassId)
	assert.Equal(t, "reputation", createdEvt.Name)

	setEvt, ok := recvEvent(setCh).Data.(event.TagSetEvent)
	require.True(t, ok)
	assert.Equal(t, testTag.TagId.Bytes(), setEvt.TagId)
	assert.Equal(t, object.SubId, setEvt.SubId)
	assert.Equal(t, uint64(5), setEvt.Flags)

	updatedEvt, ok := recvEvent(updatedCh).Data.(event.TagClassUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, tag.TagClassFlagDeprecated, updatedEvt.Flags)

	deletedEvt, ok := recvEvent(deletedCh).Data.(event.TagDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, testTag.TagId.Bytes(), deletedEvt.TagId)
}
