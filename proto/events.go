package proto

// EventSource names where an alarm/trouble event originated.
type EventSource uint8

const (
	SourceBusDevice EventSource = iota
	SourceLocalPhone
	SourceZone
	SourceSystem
	SourceRemotePhone
)

func eventSourceFromByte(b byte) EventSource {
	switch b {
	case 0x1:
		return SourceLocalPhone
	case 0x2:
		return SourceZone
	case 0x3:
		return SourceSystem
	case 0x4:
		return SourceRemotePhone
	default:
		return SourceBusDevice
	}
}

// EventCategory is the top-level tag of an alarm/trouble event, matching
// the panel's own grouping of sub-events.
type EventCategory uint8

const (
	EventAlarm EventCategory = iota
	EventFire
	EventBypass
	EventOpening
	EventClosing
	EventPartitionConfig
	EventPartition
	EventPartitionTest
	EventSystemTrouble
	EventSystemConfigChange
	EventSystem
)

// AlarmEventData names the specific alarm or trouble condition when
// Event.Category == EventAlarm; this is the family the store and
// higher-level clients act on directly, so it is decoded exhaustively.
// Latchkey additionally carries a two-byte user/zone parameter pair.
type AlarmEventData uint8

const (
	AlarmUnspecified AlarmEventData = iota
	AlarmFire
	AlarmFirePanic
	AlarmPolice
	AlarmPolicePanic
	AlarmMedical
	AlarmMedicalPanic
	AlarmAuxiliary
	AlarmAuxiliaryPanic
	AlarmTamper
	AlarmNoActivity
	AlarmSuspicion
	AlarmNotUsed
	AlarmLowTemperature
	AlarmHighTemperature
	AlarmKeystrokeViolation
	AlarmDuress
	AlarmExitFault
	AlarmExplosiveGas
	AlarmCarbonMonoxide
	AlarmEnvironmental
	AlarmLatchkey
	AlarmEquipmentTamper
	AlarmHoldup
	AlarmSprinkler
	AlarmHeat
	AlarmSirenTamper
	AlarmSmoke
	AlarmRepeaterTamper
	AlarmFirePumpActive
	AlarmFirePumpFailure
	AlarmFireGateValve
	AlarmLowCO2Pressure
	AlarmLowLiquidPressure
	AlarmLowLiquidLevel
	AlarmEntryExit
	AlarmPerimeter
	AlarmInterior
	AlarmNear
	AlarmWaterAlarm
)

func alarmEventDataFromByte(b byte) AlarmEventData {
	if b <= byte(AlarmWaterAlarm) {
		return AlarmEventData(b)
	}
	return AlarmUnspecified
}

// SubEvent carries the un-expanded detail bytes of a non-alarm event
// category (fire trouble, bypass, opening/closing, partition activity,
// system trouble and config-change families). Those families enumerate
// dozens of codes the panel rarely exercises over automation links in
// practice; Code preserves the exact sub-event byte and Params the two
// following parameter bytes so a caller can still decode or log them.
type SubEvent struct {
	Code   byte
	Params [2]byte
}

func subEventFrom(data []byte) SubEvent {
	s := SubEvent{}
	if len(data) > 0 {
		s.Code = data[0]
	}
	if len(data) > 1 {
		s.Params[0] = data[1]
	}
	if len(data) > 2 {
		s.Params[1] = data[2]
	}
	return s
}

// Event is the decoded body of an AlarmTrouble record. Exactly one of
// Alarm or Other is meaningful, selected by Category.
type Event struct {
	Category EventCategory
	Alarm    AlarmEventData // valid when Category == EventAlarm
	AlarmLatchkeyParams [2]byte
	Other    SubEvent // valid for every other category
}

func decodeEvent(data []byte) Event {
	if len(data) == 0 {
		return Event{Category: EventAlarm, Alarm: AlarmUnspecified}
	}
	category := EventCategory(data[0])
	rest := data[1:]
	if category > EventSystem {
		category = EventAlarm
	}
	e := Event{Category: category}
	if category == EventAlarm {
		e.Alarm = alarmEventDataFromByte(firstByte(rest))
		if e.Alarm == AlarmLatchkey && len(rest) > 2 {
			e.AlarmLatchkeyParams = [2]byte{rest[1], rest[2]}
		}
		return e
	}
	e.Other = subEventFrom(rest)
	return e
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// AlarmTroubleEvent is the fully decoded alarm/trouble notification, the
// panel's mechanism for reporting zone alarms, partition activity and
// system trouble conditions over the automation link.
type AlarmTroubleEvent struct {
	PartitionNumber uint8
	AreaNumber      uint8
	SourceType      EventSource
	SourceNumber    [3]uint8
	Event           Event
}

func decodeAlarmTrouble(data []byte) (Record, bool) {
	if len(data) < 6 {
		return Record{Kind: KindAlarmTrouble, Raw: data}, false
	}
	a := &AlarmTroubleEvent{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		SourceType:      eventSourceFromByte(data[2]),
		SourceNumber:    [3]uint8{data[3], data[4], data[5]},
		Event:           decodeEvent(data[6:]),
	}
	return Record{Kind: KindAlarmTrouble, Raw: data, AlarmTrouble: a}, true
}
