package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concord4/concord4/proto"
)

func TestZoneStatusDropsSilentlyForUnknownZone(t *testing.T) {
	var s Store
	s.Apply(proto.Record{
		Kind:       proto.KindZoneStatus,
		ZoneStatus: &proto.ZoneStatusData{PartitionNumber: 1, ZoneNumber: 9, ZoneStatus: proto.ZoneTripped},
	})
	if _, ok := s.Zone("p1-z9"); ok {
		t.Fatal("zone status should not create an unknown zone")
	}
}

func TestZoneStatusUpdatesExistingZone(t *testing.T) {
	var s Store
	z := &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 3, ZoneStatus: proto.ZoneNormal, GroupNumber: 1}
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: z})
	s.Apply(proto.Record{
		Kind:       proto.KindZoneStatus,
		ZoneStatus: &proto.ZoneStatusData{PartitionNumber: 1, ZoneNumber: 3, ZoneStatus: proto.ZoneAlarm},
	})
	got, ok := s.Zone("p1-z3")
	require.True(t, ok, "zone should exist")
	assert.Equal(t, proto.ZoneAlarm, got.ZoneStatus)
}

func TestArmingLevelDropsSilentlyForUnknownPartition(t *testing.T) {
	var s Store
	s.Apply(proto.Record{
		Kind:        proto.KindArmingLevel,
		ArmingLevel: &proto.ArmingLevelData{PartitionNumber: 2, ArmingLevel: proto.ArmingAway},
	})
	if _, ok := s.Partition(2); ok {
		t.Fatal("arming level should not create an unknown partition")
	}
}

func TestGroupMembershipTracksZones(t *testing.T) {
	var s Store
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 1, GroupNumber: 5}})
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 2, GroupNumber: 5}})

	zones := s.GroupZones("p1-g5")
	if len(zones) != 2 {
		t.Fatalf("GroupZones = %v, want 2 entries", zones)
	}
}

func TestZoneDataAddsItselfToPartitionZoneSet(t *testing.T) {
	var s Store
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 1}})
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 2}})
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 2, ZoneNumber: 3}})

	p, ok := s.Partition(1)
	require.True(t, ok, "partition 1 should have been created by ZoneData upsert")
	assert.Equal(t, uint8(1), p.PartitionNumber)
	assert.ElementsMatch(t, []string{"p1-z1", "p1-z2"}, s.PartitionZones(1))
	assert.ElementsMatch(t, []string{"p2-z3"}, s.PartitionZones(2))
}

func TestPartitionDataRecomputesZoneSetFromExistingZones(t *testing.T) {
	var s Store
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 1}})
	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 2}})

	// A PartitionData upsert arriving afterward must recompute, not
	// clobber, the zone set already built up from ZoneData.
	s.Apply(proto.Record{
		Kind:      proto.KindPartitionData,
		Partition: &proto.PartitionData{PartitionNumber: 1, ArmingLevel: proto.ArmingOff},
	})

	assert.ElementsMatch(t, []string{"p1-z1", "p1-z2"}, s.PartitionZones(1))
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	var s Store
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Apply(proto.Record{Kind: proto.KindZoneData, Zone: &proto.ZoneData{PartitionNumber: 1, ZoneNumber: 1}})

	select {
	case u := <-ch:
		if u.Zone == nil || u.Zone.ID() != "p1-z1" {
			t.Fatalf("got %+v", u)
		}
	default:
		t.Fatal("expected buffered update")
	}
}

func TestEqptListDoneMarksInitialized(t *testing.T) {
	var s Store
	if s.Initialized() {
		t.Fatal("should not start initialized")
	}
	s.Apply(proto.Record{Kind: proto.KindEqptListDone})
	if !s.Initialized() {
		t.Fatal("should be initialized after EqptListDone")
	}
}
