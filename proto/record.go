package proto

import "fmt"

// RecordKind identifies the decoded shape of an inbound Record.
type RecordKind uint8

const (
	KindAck RecordKind = iota
	KindNak
	KindPanelType
	KindAutomationEventLost
	KindZoneData
	KindPartitionData
	KindSuperbusDevData
	KindSuperbusDevCap
	KindOutputData
	KindEqptListDone
	KindUserData
	KindSchedData
	KindSchedEventData
	KindLightAttach
	KindClearImage
	KindZoneStatus
	KindArmingLevel
	KindAlarmTrouble
	KindEntryExitDelay
	KindSirenSetup
	KindSirenSync
	KindSirenGo
	KindTouchpad
	KindSirenStop
	KindFeatState
	KindTemp
	KindTimeAndDate
	KindLightsState
	KindUserLights
	KindKeyfob
	KindUnknown
)

// Record is a decoded panel message. At most one of the typed fields is
// populated, the one matching Kind; kinds without a typed decode (sirens,
// lights, keyfob and similar) carry only Raw. Raw always holds the undecoded payload that
// followed the command byte(s).
type Record struct {
	Kind RecordKind
	Raw  []byte

	PanelType     *PanelData
	Zone          *ZoneData
	ZoneStatus    *ZoneStatusData
	Partition     *PartitionData
	ArmingLevel   *ArmingLevelData
	Touchpad      *TouchpadDisplay
	FeatureState  *FeatureState
	TimeAndDate   *TimeDate
	AlarmTrouble  *AlarmTroubleEvent
	SuperbusDev   *SuperbusDeviceData
	SuperbusDevCap *SuperbusDeviceCapabilityData
	User          *UserData
}

// ErrShortRecord signals a payload too short for its command byte(s) to
// parse into a fixed-layout record.
type ErrShortRecord struct {
	Cmd    byte
	Subcmd byte
	Len    int
}

func (e ErrShortRecord) Error() string {
	return fmt.Sprintf("proto: record cmd=%#02x subcmd=%#02x too short (%d bytes)", e.Cmd, e.Subcmd, e.Len)
}

// DecodeRecord dispatches a data frame body into a typed Record. The
// dispatch first tries the two-byte (command, subcommand) table used by
// commands 0x22 and 0x23; if that combination is not recognised it falls
// through to a first-byte-only table. A bare command byte 0x23 therefore
// falls through to the first-byte table and resolves as LightsState,
// since the two-level table needs a subcommand byte to match at all.
// A command code neither table knows is returned as KindUnknown together
// with an error.
func DecodeRecord(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, ErrShortRecord{}
	}
	cmd := data[0]
	body := data[1:]

	if cmd == 0x22 || cmd == 0x23 {
		if len(body) > 0 {
			subcmd := body[0]
			if rec, ok := decodeBySubcommand(cmd, subcmd, body[1:]); ok {
				return rec, nil
			}
		}
	}

	return decodeByCommand(cmd, body)
}

func decodeBySubcommand(cmd, subcmd byte, rest []byte) (Record, bool) {
	switch {
	case cmd == 0x22 && subcmd == 0x01:
		return decodeArmingLevel(rest)
	case cmd == 0x22 && subcmd == 0x02:
		return decodeAlarmTrouble(rest)
	case cmd == 0x22 && subcmd == 0x03:
		return Record{Kind: KindEntryExitDelay, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x04:
		return Record{Kind: KindSirenSetup, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x05:
		return Record{Kind: KindSirenSync, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x06:
		return Record{Kind: KindSirenGo, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x09:
		return decodeTouchpad(rest)
	case cmd == 0x22 && subcmd == 0x0B:
		return Record{Kind: KindSirenStop, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x0C:
		return decodeFeatureState(rest)
	case cmd == 0x22 && subcmd == 0x0D:
		return Record{Kind: KindTemp, Raw: rest}, true
	case cmd == 0x22 && subcmd == 0x0E:
		return decodeTimeAndDate(rest)
	case cmd == 0x23 && subcmd == 0x01:
		return Record{Kind: KindLightsState, Raw: rest}, true
	case cmd == 0x23 && subcmd == 0x02:
		return Record{Kind: KindUserLights, Raw: rest}, true
	case cmd == 0x23 && subcmd == 0x03:
		return Record{Kind: KindKeyfob, Raw: rest}, true
	default:
		return Record{}, false
	}
}

func decodeByCommand(cmd byte, body []byte) (Record, error) {
	switch cmd {
	case 0x01:
		return decodePanelType(body)
	case 0x02:
		return Record{Kind: KindAutomationEventLost, Raw: body}, nil
	case 0x03:
		return decodeZoneData(body)
	case 0x04:
		return decodePartitionData(body)
	case 0x05:
		return decodeSuperbusDevData(body)
	case 0x06:
		return decodeSuperbusDevCap(body)
	case 0x07:
		return Record{Kind: KindOutputData, Raw: body}, nil
	case 0x08:
		return Record{Kind: KindEqptListDone, Raw: body}, nil
	case 0x09:
		return decodeUserData(body)
	case 0x0A:
		return Record{Kind: KindSchedData, Raw: body}, nil
	case 0x0B:
		return Record{Kind: KindSchedEventData, Raw: body}, nil
	case 0x0C:
		return Record{Kind: KindLightAttach, Raw: body}, nil
	case 0x20:
		return Record{Kind: KindClearImage, Raw: body}, nil
	case 0x21:
		return decodeZoneStatus(body)
	case 0x23:
		// No subcommand byte present (or it didn't match the table
		// above): this command code doubles as LightsState.
		return Record{Kind: KindLightsState, Raw: body}, nil
	default:
		return Record{Kind: KindUnknown, Raw: body}, fmt.Errorf("proto: unknown record cmd=%#02x", cmd)
	}
}
