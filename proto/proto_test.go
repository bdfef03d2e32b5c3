package proto

import (
	"reflect"
	"testing"
)

func TestArmStayNormal(t *testing.T) {
	opts := ArmOptions{Mode: ArmStay, Code: [4]Keypress{KeyOne, KeyTwo, KeyThree, KeyFour}}
	got := Arm(opts).Bytes()
	want := []byte{0x40, defaultPartition, 0x00, byte(KeyTwo), byte(KeyOne), byte(KeyTwo), byte(KeyThree), byte(KeyFour)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Arm(stay) = % x, want % x", got, want)
	}
}

func TestArmAwaySilent(t *testing.T) {
	opts := ArmOptions{Mode: ArmAway, HasLevel: true, Level: ArmSilent, Code: [4]Keypress{KeyOne, KeyTwo, KeyThree, KeyFour}}
	got := Arm(opts).Bytes()
	want := []byte{0x40, defaultPartition, 0x00, byte(KeyFive), byte(KeyThree), byte(KeyOne), byte(KeyTwo), byte(KeyThree), byte(KeyFour)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Arm(away,silent) = % x, want % x", got, want)
	}
}

func TestArmInstantAppendsFour(t *testing.T) {
	opts := ArmOptions{Mode: ArmStay, HasLevel: true, Level: ArmInstant, Code: [4]Keypress{KeyOne, KeyTwo, KeyThree, KeyFour}, Partition: 2}
	got := Arm(opts).Bytes()
	want := []byte{0x40, 2, 0x00, byte(KeyTwo), byte(KeyOne), byte(KeyTwo), byte(KeyThree), byte(KeyFour), byte(KeyFour)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Arm(instant) = % x, want % x", got, want)
	}
}

func TestDisarm(t *testing.T) {
	opts := DisarmOptions{Code: [4]Keypress{KeyNine, KeyEight, KeySeven, KeySix}}
	got := Disarm(opts).Bytes()
	want := []byte{0x40, defaultPartition, 0x00, byte(KeyOne), byte(KeyNine), byte(KeyEight), byte(KeySeven), byte(KeySix)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Disarm = % x, want % x", got, want)
	}
}

func TestListAllDataIsBareCommand(t *testing.T) {
	got := List(ListAllData).Bytes()
	want := []byte{0x02}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List(AllData) = % x, want % x", got, want)
	}
}

func TestListSpecificClassAppendsSubcommand(t *testing.T) {
	got := List(ListZoneData).Bytes()
	want := []byte{0x02, 0x03}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List(Zone) = % x, want % x", got, want)
	}
}

func TestDecodeRecordTwoLevelDispatch(t *testing.T) {
	// cmd=0x22 subcmd=0x01 ArmingLevel: partition=1 area=1 pad pad level=Home(2)
	data := []byte{0x22, 0x01, 0x01, 0x01, 0x00, 0x00, 0x02}
	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Kind != KindArmingLevel || rec.ArmingLevel == nil {
		t.Fatalf("got %+v", rec)
	}
	if rec.ArmingLevel.ArmingLevel != ArmingHome {
		t.Fatalf("ArmingLevel = %v, want ArmingHome", rec.ArmingLevel.ArmingLevel)
	}
}

func TestDecodeRecordBareCmd23AliasesLightsState(t *testing.T) {
	data := []byte{0x23}
	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Kind != KindLightsState {
		t.Fatalf("Kind = %v, want KindLightsState", rec.Kind)
	}
}

func TestDecodeRecordCmd23WithSubcommand(t *testing.T) {
	data := []byte{0x23, 0x03, 0x01}
	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Kind != KindKeyfob {
		t.Fatalf("Kind = %v, want KindKeyfob", rec.Kind)
	}
}

func TestDecodeZoneData(t *testing.T) {
	data := append([]byte{0x03, 0x01, 0x01, 0x03, 0x00, 0x04, 0x00, 0x01}, 0x00)
	// partition=1 area=1 group=3 pad zone=4 type=hardwired status=tripped(1) text tokens=[0]="0"
	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Kind != KindZoneData || rec.Zone == nil {
		t.Fatalf("got %+v", rec)
	}
	if rec.Zone.ID() != "p1-z4" {
		t.Fatalf("ID = %s, want p1-z4", rec.Zone.ID())
	}
}

func TestDecodeTextTokensBackspaceRemovesOneChar(t *testing.T) {
	// 'A' (0x11), backspace (0xFD), 'B' (0x12)
	got := decodeTextTokens([]byte{0x11, 0xFD, 0x12})
	if got != "B" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeTextTokensTrailingSpaceOnMultiCharWord(t *testing.T) {
	// "FIRE" (0x68) followed by "ALARM" (0x33): FIRE gets a trailing space,
	// ALARM (the last token) does not.
	got := decodeTextTokens([]byte{0x68, 0x33})
	if got != "FIRE ALARM" {
		t.Fatalf("got %q", got)
	}
}
