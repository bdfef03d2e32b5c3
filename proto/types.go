package proto

import "fmt"

// ZoneStatus is the reported condition of a single zone.
type ZoneStatus uint8

const (
	ZoneNormal ZoneStatus = iota
	ZoneTripped
	ZoneFaulted
	ZoneAlarm
	ZoneTrouble
	ZoneBypassed
	ZoneUnknown
)

func zoneStatusFromByte(b byte) ZoneStatus {
	switch b {
	case 0x0:
		return ZoneNormal
	case 0x1:
		return ZoneTripped
	case 0x2:
		return ZoneFaulted
	case 0x4:
		return ZoneAlarm
	case 0x8:
		return ZoneTrouble
	case 0xA:
		return ZoneBypassed
	default:
		return ZoneUnknown
	}
}

// ZoneType names the physical medium a zone is wired through.
type ZoneType uint8

const (
	ZoneHardwired ZoneType = iota
	ZoneRF
	ZoneTouchpadType
)

func zoneTypeFromByte(b byte) ZoneType {
	switch b {
	case 0x1:
		return ZoneRF
	case 0x2:
		return ZoneTouchpadType
	default:
		return ZoneHardwired
	}
}

// ZoneData is the full equipment-list record for one zone.
type ZoneData struct {
	PartitionNumber uint8
	AreaNumber      uint8
	GroupNumber     uint8
	ZoneNumber      uint8
	ZoneType        ZoneType
	ZoneStatus      ZoneStatus
	ZoneText        string
}

// ID returns the derived zone identifier used throughout the store.
func (z ZoneData) ID() string {
	return fmt.Sprintf("p%d-z%d", z.PartitionNumber, z.ZoneNumber)
}

// GroupID returns the derived identifier of the group this zone belongs to.
func (z ZoneData) GroupID() string {
	return fmt.Sprintf("p%d-g%d", z.PartitionNumber, z.GroupNumber)
}

func decodeZoneData(data []byte) (Record, error) {
	if len(data) < 7 {
		return Record{}, ErrShortRecord{Cmd: 0x03, Len: len(data)}
	}
	z := &ZoneData{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		GroupNumber:     data[2],
		ZoneNumber:      data[4],
		ZoneType:        zoneTypeFromByte(data[5]),
		ZoneStatus:      zoneStatusFromByte(data[6]),
		ZoneText:        decodeTextTokens(data[7:]),
	}
	return Record{Kind: KindZoneData, Raw: data, Zone: z}, nil
}

// ZoneStatusData is a lightweight zone status update, distinct from the
// full ZoneData equipment record.
type ZoneStatusData struct {
	PartitionNumber uint8
	AreaNumber      uint8
	ZoneNumber      uint8
	ZoneStatus      ZoneStatus
}

// ZoneID returns the derived zone identifier this status update applies to.
func (z ZoneStatusData) ZoneID() string {
	return fmt.Sprintf("p%d-z%d", z.PartitionNumber, z.ZoneNumber)
}

func decodeZoneStatus(data []byte) (Record, error) {
	if len(data) < 5 {
		return Record{}, ErrShortRecord{Cmd: 0x21, Len: len(data)}
	}
	z := &ZoneStatusData{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		ZoneNumber:      data[3],
		ZoneStatus:      zoneStatusFromByte(data[4]),
	}
	return Record{Kind: KindZoneStatus, Raw: data, ZoneStatus: z}, nil
}

// PartitionArmingLevel is the coarse partition state reported in equipment
// list walks, distinct from the finer ArmingLevel reported on live updates.
type PartitionArmingLevel uint8

const (
	PartitionOff PartitionArmingLevel = iota
	PartitionStay
	PartitionAway
	PartitionPhoneTest
	PartitionSensorTest
)

func partitionArmingLevelFromByte(b byte) PartitionArmingLevel {
	switch b {
	case 0x2:
		return PartitionStay
	case 0x3:
		return PartitionAway
	case 0x8:
		return PartitionPhoneTest
	case 0x9:
		return PartitionSensorTest
	default:
		return PartitionOff
	}
}

// ArmingLevel is the live arming state of a partition.
type ArmingLevel uint8

const (
	ArmingZoneTest ArmingLevel = iota
	ArmingOff
	ArmingHome
	ArmingAway
	ArmingNight
	ArmingSilent
)

func armingLevelFromByte(b byte) ArmingLevel {
	switch b {
	case 0x0:
		return ArmingZoneTest
	case 0x2:
		return ArmingHome
	case 0x3:
		return ArmingAway
	case 0x4:
		return ArmingNight
	case 0x5:
		return ArmingSilent
	default:
		return ArmingOff
	}
}

func armingLevelFromPartitionLevel(p PartitionArmingLevel) ArmingLevel {
	switch p {
	case PartitionStay:
		return ArmingHome
	case PartitionAway:
		return ArmingAway
	case PartitionPhoneTest, PartitionSensorTest:
		return ArmingZoneTest
	default:
		return ArmingOff
	}
}

// PartitionData is the equipment-list record for one partition. Zones is
// filled in by the store as member zones are learned, not by the wire
// decode itself.
type PartitionData struct {
	PartitionNumber uint8
	AreaNumber      uint8
	ArmingLevel     ArmingLevel
	Zones           map[string]struct{}
}

func decodePartitionData(data []byte) (Record, error) {
	if len(data) < 3 {
		return Record{}, ErrShortRecord{Cmd: 0x04, Len: len(data)}
	}
	p := &PartitionData{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		ArmingLevel:     armingLevelFromPartitionLevel(partitionArmingLevelFromByte(data[2])),
	}
	return Record{Kind: KindPartitionData, Raw: data, Partition: p}, nil
}

// ArmingLevelData is a live arming-level change notification.
type ArmingLevelData struct {
	PartitionNumber uint8
	AreaNumber      uint8
	ArmingLevel     ArmingLevel
}

func decodeArmingLevel(data []byte) (Record, bool) {
	if len(data) < 5 {
		return Record{Kind: KindArmingLevel, Raw: data}, false
	}
	a := &ArmingLevelData{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		ArmingLevel:     armingLevelFromByte(data[4]),
	}
	return Record{Kind: KindArmingLevel, Raw: data, ArmingLevel: a}, true
}

// PanelType identifies the panel model family.
type PanelType uint8

const (
	PanelConcord PanelType = iota
	PanelConcordExpress
	PanelConcordExpress4
	PanelConcordEuro
)

func panelTypeFromByte(b byte) PanelType {
	switch b {
	case 0x0B:
		return PanelConcordExpress
	case 0x1E:
		return PanelConcordExpress4
	case 0x0E:
		return PanelConcordEuro
	default:
		return PanelConcord
	}
}

// PanelData describes the attached panel's identity.
type PanelData struct {
	PanelType         PanelType
	HardwareRevision  string
	SoftwareRevision  string
	SerialNumber      string
}

func decodePanelType(data []byte) (Record, error) {
	if len(data) < 9 {
		return Record{}, ErrShortRecord{Cmd: 0x01, Len: len(data)}
	}
	p := &PanelData{
		PanelType:        panelTypeFromByte(data[0]),
		HardwareRevision: fmt.Sprintf("%c%X", letterFromRepresentativeHex(data[1]), data[2]),
		SoftwareRevision: fmt.Sprintf("%X%X", data[3], data[4]),
		SerialNumber:     fmt.Sprintf("%X%X%X%X", data[5], data[6], data[7], data[8]),
	}
	return Record{Kind: KindPanelType, Raw: data, PanelType: p}, nil
}

// Feature is a single per-partition panel feature flag.
type Feature uint8

const (
	FeatureChime Feature = iota
	FeatureEnergySaver
	FeatureNoDelay
	FeatureLatchKey
	FeatureSilentArm
	FeatureQuickArm
)

func featureFromByte(b byte) Feature {
	switch b {
	case 0x02:
		return FeatureEnergySaver
	case 0x04:
		return FeatureNoDelay
	case 0x08:
		return FeatureLatchKey
	case 0x10:
		return FeatureSilentArm
	case 0x20:
		return FeatureQuickArm
	default:
		return FeatureChime
	}
}

// FeatureState reports a toggled feature on a partition.
type FeatureState struct {
	PartitionNumber uint8
	AreaNumber      uint8
	Feature         Feature
}

func decodeFeatureState(data []byte) (Record, bool) {
	if len(data) < 3 {
		return Record{Kind: KindFeatState, Raw: data}, false
	}
	f := &FeatureState{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		Feature:         featureFromByte(data[2]),
	}
	return Record{Kind: KindFeatState, Raw: data, FeatureState: f}, true
}

// TimeDate is the panel's current clock, as last broadcast.
type TimeDate struct {
	Hour, Minute, Month, Day, Year uint8
}

func decodeTimeAndDate(data []byte) (Record, bool) {
	if len(data) < 5 {
		return Record{Kind: KindTimeAndDate, Raw: data}, false
	}
	t := &TimeDate{
		Hour:   data[0],
		Minute: data[1],
		Month:  data[2],
		Day:    data[3],
		Year:   data[4],
	}
	return Record{Kind: KindTimeAndDate, Raw: data, TimeAndDate: t}, true
}

// SuperbusDeviceStatus is the health of a bus device.
type SuperbusDeviceStatus uint8

const (
	SuperbusDeviceOK SuperbusDeviceStatus = iota
	SuperbusDeviceFailed
)

func superbusDeviceStatusFromByte(b byte) SuperbusDeviceStatus {
	if b == 0x0 {
		return SuperbusDeviceOK
	}
	return SuperbusDeviceFailed
}

// SuperbusDeviceData identifies and reports the health of one device
// attached to the panel's Superbus.
type SuperbusDeviceData struct {
	PartitionNumber uint8
	AreaNumber      uint8
	DeviceID        [3]uint8
	DeviceStatus    SuperbusDeviceStatus
}

func decodeSuperbusDevData(data []byte) (Record, error) {
	if len(data) < 6 {
		return Record{}, ErrShortRecord{Cmd: 0x05, Len: len(data)}
	}
	d := &SuperbusDeviceData{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		DeviceID:        [3]uint8{data[2], data[3], data[4]},
		DeviceStatus:    superbusDeviceStatusFromByte(data[5]),
	}
	return Record{Kind: KindSuperbusDevData, Raw: data, SuperbusDev: d}, nil
}

// SuperbusCapability names one capability bit of a Superbus device.
type SuperbusCapability uint8

const (
	CapPowerSupervision SuperbusCapability = iota
	CapAccessControl
	CapAnalogSmoke
	CapAudioListenIn
	CapSnapCardSupervision
	CapMicroburst
	CapDualPhoneLine
	CapEnergyManagement
	CapInputZones
	CapPhastAutomationSystemManager
	CapPhoneInterface
	CapRelayOutputs
	CapRFReceiver
	CapRFTransmitter
	CapParallelPrinter
	CapUnknown
	CapLedTouchpad
	CapOneLineTwoLineBltTouchpad
	CapGuiTouchpad
	CapVoiceEvacuation
	CapPager
	CapDownloadableCodeData
	CapJTechPremisePager
	CapCryptography
	CapLedDisplay
)

// SuperbusDeviceCapabilityData is one capability record for a bus device.
// Count is only meaningful for the InputZones and RelayOutputs capabilities.
type SuperbusDeviceCapabilityData struct {
	DeviceID   [3]uint8
	Capability SuperbusCapability
	Count      uint8
}

func superbusCapabilityFromByte(b byte) SuperbusCapability {
	switch {
	case b <= 0x18:
		return SuperbusCapability(b)
	default:
		return CapUnknown
	}
}

func decodeSuperbusDevCap(data []byte) (Record, error) {
	if len(data) < 4 {
		return Record{}, ErrShortRecord{Cmd: 0x06, Len: len(data)}
	}
	c := &SuperbusDeviceCapabilityData{
		DeviceID:   [3]uint8{data[0], data[1], data[2]},
		Capability: superbusCapabilityFromByte(data[3]),
	}
	if (c.Capability == CapInputZones || c.Capability == CapRelayOutputs) && len(data) > 4 {
		c.Count = data[4]
	}
	return Record{Kind: KindSuperbusDevCap, Raw: data, SuperbusDevCap: c}, nil
}

// CodeType classifies a stored user code by its number.
type CodeType struct {
	Kind   CodeKind
	Number uint8 // meaningful for User, Master and Duress kinds
}

// CodeKind enumerates the category a CodeType falls into.
type CodeKind uint8

const (
	CodeUser CodeKind = iota
	CodeMaster
	CodeDuress
	CodeSystemMaster
	CodeInstaller
	CodeDealer
	CodeAvm
	CodeQuickArm
	CodeKeySwitch
	CodeSystem
)

func codeTypeFromByte(b byte) CodeType {
	switch {
	case b <= 229:
		return CodeType{Kind: CodeUser, Number: b}
	case b <= 237:
		return CodeType{Kind: CodeMaster, Number: b - 230}
	case b <= 245:
		return CodeType{Kind: CodeDuress, Number: b - 238}
	case b == 246:
		return CodeType{Kind: CodeSystemMaster}
	case b == 247:
		return CodeType{Kind: CodeInstaller}
	case b == 248:
		return CodeType{Kind: CodeDealer}
	case b == 249:
		return CodeType{Kind: CodeAvm}
	case b == 250:
		return CodeType{Kind: CodeQuickArm}
	case b == 251:
		return CodeType{Kind: CodeKeySwitch}
	case b == 252:
		return CodeType{Kind: CodeSystem}
	default:
		return CodeType{Kind: CodeUser, Number: b}
	}
}

// UserData is a single stored-user-code record. Code is nil when the
// panel did not include the BCD-encoded digits in this message.
type UserData struct {
	PartitionNumber uint8
	UserNumber      uint8
	UserType        CodeType
	Code            *[4]uint8
}

func decodeUserData(data []byte) (Record, error) {
	if len(data) < 2 {
		return Record{}, ErrShortRecord{Cmd: 0x09, Len: len(data)}
	}
	u := &UserData{
		PartitionNumber: data[0],
		UserNumber:      data[1],
		UserType:        codeTypeFromByte(data[1]),
	}
	if len(data) > 4 {
		u.Code = &[4]uint8{
			data[3] >> 4, data[3] & 0x0F,
			data[4] >> 4, data[4] & 0x0F,
		}
	}
	return Record{Kind: KindUserData, Raw: data, User: u}, nil
}

// TouchpadDisplay is a rendered keypad display update.
type TouchpadDisplay struct {
	PartitionNumber uint8
	AreaNumber      uint8
	MessageType     uint8
	DisplayTokens   []byte
	Text            string
}

func decodeTouchpad(data []byte) (Record, bool) {
	if len(data) < 3 {
		return Record{Kind: KindTouchpad, Raw: data}, false
	}
	t := &TouchpadDisplay{
		PartitionNumber: data[0],
		AreaNumber:      data[1],
		MessageType:     data[2],
		DisplayTokens:   append([]byte(nil), data[3:]...),
		Text:            decodeTextTokens(data[3:]),
	}
	return Record{Kind: KindTouchpad, Raw: data, Touchpad: t}, true
}
