// Package store holds the in-memory projection of panel, partition, zone
// and group state built up from decoded records, and fans out updates to
// subscribers.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/concord4/concord4/proto"
)

// Update is a single state change delivered to subscribers.
type Update struct {
	Panel     *proto.PanelData
	Zone      *proto.ZoneData
	Partition *proto.PartitionData
}

// Store is a concurrent-safe projection of panel state. The zero value is
// ready to use.
type Store struct {
	panel atomic.Pointer[proto.PanelData]

	zones       sync.Map // string zone ID -> *proto.ZoneData
	partitions  sync.Map // uint8 partition number -> *proto.PartitionData
	groups      sync.Map // string group ID -> *sync.Map (zone ID -> struct{})
	superbus    sync.Map // [3]uint8 device ID -> *proto.SuperbusDeviceData
	users       sync.Map // uint8 user number -> *proto.UserData

	initialized atomic.Bool

	subMu sync.Mutex
	subs  []chan Update
}

// Apply folds a decoded Record into the store, following the panel's own
// overwrite-vs-drop rules: full equipment records (PanelType, ZoneData,
// PartitionData) always upsert; narrower live updates (ZoneStatus,
// ArmingLevel) only touch fields on an entity the store already knows
// about and are dropped silently otherwise.
func (s *Store) Apply(rec proto.Record) {
	switch rec.Kind {
	case proto.KindPanelType:
		s.panel.Store(rec.PanelType)
		s.publish(Update{Panel: rec.PanelType})

	case proto.KindZoneData:
		z := rec.Zone
		s.zones.Store(z.ID(), z)
		s.addToGroup(z.GroupID(), z.ID())
		s.addZoneToPartition(z.PartitionNumber, z.ID())
		s.publish(Update{Zone: z})

	case proto.KindZoneStatus:
		zs := rec.ZoneStatus
		id := zs.ZoneID()
		v, ok := s.zones.Load(id)
		if !ok {
			return // unknown zone: drop silently
		}
		existing := v.(*proto.ZoneData)
		updated := *existing
		updated.ZoneStatus = zs.ZoneStatus
		s.zones.Store(id, &updated)
		s.publish(Update{Zone: &updated})

	case proto.KindPartitionData:
		p := rec.Partition
		p.Zones = s.zonesForPartition(p.PartitionNumber)
		s.partitions.Store(p.PartitionNumber, p)
		s.publish(Update{Partition: p})

	case proto.KindArmingLevel:
		al := rec.ArmingLevel
		v, ok := s.partitions.Load(al.PartitionNumber)
		if !ok {
			return // unknown partition: drop silently
		}
		existing := v.(*proto.PartitionData)
		updated := *existing
		updated.ArmingLevel = al.ArmingLevel
		s.partitions.Store(al.PartitionNumber, &updated)
		s.publish(Update{Partition: &updated})

	case proto.KindSuperbusDevData:
		d := rec.SuperbusDev
		s.superbus.Store(d.DeviceID, d)

	case proto.KindUserData:
		u := rec.User
		s.users.Store(u.UserNumber, u)

	case proto.KindEqptListDone:
		s.initialized.Store(true)
	}
}

func (s *Store) addToGroup(groupID, zoneID string) {
	v, _ := s.groups.LoadOrStore(groupID, &sync.Map{})
	v.(*sync.Map).Store(zoneID, struct{}{})
}

// addZoneToPartition ensures a partition entry exists for partition (an
// empty one if this is the first zone it's heard about) and adds zoneID to
// its zone set, maintaining the invariant that every partition's zone set
// equals the zones whose PartitionNumber matches.
func (s *Store) addZoneToPartition(partition uint8, zoneID string) {
	fresh := &proto.PartitionData{PartitionNumber: partition, Zones: map[string]struct{}{zoneID: {}}}
	for {
		actual, loaded := s.partitions.LoadOrStore(partition, fresh)
		if !loaded {
			return
		}
		existing := actual.(*proto.PartitionData)
		if _, ok := existing.Zones[zoneID]; ok {
			return
		}
		updated := *existing
		updated.Zones = cloneZoneSet(existing.Zones)
		updated.Zones[zoneID] = struct{}{}
		if s.partitions.CompareAndSwap(partition, existing, &updated) {
			return
		}
	}
}

// zonesForPartition recomputes a partition's zone set from the zones
// currently known to the store.
func (s *Store) zonesForPartition(partition uint8) map[string]struct{} {
	zones := make(map[string]struct{})
	s.zones.Range(func(key, value any) bool {
		if value.(*proto.ZoneData).PartitionNumber == partition {
			zones[key.(string)] = struct{}{}
		}
		return true
	})
	return zones
}

func cloneZoneSet(zones map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(zones)+1)
	for id := range zones {
		out[id] = struct{}{}
	}
	return out
}

// Initialized reports whether an equipment list walk has completed at
// least once.
func (s *Store) Initialized() bool {
	return s.initialized.Load()
}

// Panel returns the last known panel identity, or nil if none has been
// received yet.
func (s *Store) Panel() *proto.PanelData {
	return s.panel.Load()
}

// Zone returns the zone by its derived identifier.
func (s *Store) Zone(id string) (*proto.ZoneData, bool) {
	v, ok := s.zones.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*proto.ZoneData), true
}

// Partition returns the partition by number.
func (s *Store) Partition(number uint8) (*proto.PartitionData, bool) {
	v, ok := s.partitions.Load(number)
	if !ok {
		return nil, false
	}
	return v.(*proto.PartitionData), true
}

// PartitionZones returns the set of zone identifiers assigned to a
// partition.
func (s *Store) PartitionZones(number uint8) []string {
	v, ok := s.partitions.Load(number)
	if !ok {
		return nil
	}
	p := v.(*proto.PartitionData)
	ids := make([]string, 0, len(p.Zones))
	for id := range p.Zones {
		ids = append(ids, id)
	}
	return ids
}

// GroupZones returns the set of zone identifiers belonging to a group.
func (s *Store) GroupZones(groupID string) []string {
	v, ok := s.groups.Load(groupID)
	if !ok {
		return nil
	}
	var ids []string
	v.(*sync.Map).Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}

// Snapshot is a point-in-time copy of the full projected state.
type Snapshot struct {
	Panel       *proto.PanelData
	Zones       map[string]proto.ZoneData
	Partitions  map[uint8]proto.PartitionData
	Initialized bool
}

// Snapshot copies out the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Panel:       s.panel.Load(),
		Zones:       make(map[string]proto.ZoneData),
		Partitions:  make(map[uint8]proto.PartitionData),
		Initialized: s.initialized.Load(),
	}
	s.zones.Range(func(key, value any) bool {
		snap.Zones[key.(string)] = *value.(*proto.ZoneData)
		return true
	})
	s.partitions.Range(func(key, value any) bool {
		snap.Partitions[key.(uint8)] = *value.(*proto.PartitionData)
		return true
	})
	return snap
}

// Subscribe returns a channel of state updates. Subscriptions are
// best-effort: a subscriber that falls behind has its oldest buffered
// update dropped rather than blocking the publisher, matching the
// automation link's own tolerance for a slow downstream consumer.
func (s *Store) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 32)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, c := range s.subs {
			if c == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

func (s *Store) publish(u Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}
