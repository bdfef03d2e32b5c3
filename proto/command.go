package proto

// Command is an outbound request body, ready for wire.EncodeData once its
// bytes are built. Ack and Nak bypass the length/checksum framing entirely
// and are handled directly by the link layer, so they have no Command
// representation here.
type Command struct {
	body []byte
}

// Bytes returns the encoded command body.
func (c Command) Bytes() []byte { return c.body }

// List requests a refresh of one data class, or of all classes when req is
// ListAllData.
func List(req ListRequest) Command {
	if req == ListAllData {
		return Command{[]byte{0x02}}
	}
	return Command{[]byte{0x02, byte(req)}}
}

// DynamicDataRefresh requests a resend of all volatile status (arming
// level, zone status and similar), without re-walking the full equipment
// list.
func DynamicDataRefresh() Command {
	return Command{[]byte{0x20}}
}

const defaultPartition = 1

// handleKeypress builds the keypress-injection command body: a fixed
// 0x40 marker, the target partition, a reserved zero byte, then the key
// sequence itself.
func handleKeypress(partition uint8, keys []Keypress) Command {
	if partition == 0 {
		partition = defaultPartition
	}
	body := make([]byte, 0, 3+len(keys))
	body = append(body, 0x40, partition, 0x00)
	for _, k := range keys {
		body = append(body, byte(k))
	}
	return Command{body}
}

// Arm builds the keypress sequence that requests arming per opts: the
// mode key (Stay or Away, silent variants prefixed with Five), the user
// code, and a trailing Four when an instant level was requested.
func Arm(opts ArmOptions) Command {
	var keys []Keypress
	switch opts.Mode {
	case ArmStay:
		if opts.HasLevel && opts.Level == ArmSilent {
			keys = append(keys, KeyFive, KeyTwo)
		} else {
			keys = append(keys, KeyTwo)
		}
	case ArmAway:
		if opts.HasLevel && opts.Level == ArmSilent {
			keys = append(keys, KeyFive, KeyThree)
		} else {
			keys = append(keys, KeyThree)
		}
	}
	keys = append(keys, opts.Code[:]...)
	if opts.HasLevel && opts.Level == ArmInstant {
		keys = append(keys, KeyFour)
	}
	return handleKeypress(opts.Partition, keys)
}

// Disarm builds the keypress sequence that requests disarming: the One
// key followed by the user code.
func Disarm(opts DisarmOptions) Command {
	keys := append([]Keypress{KeyOne}, opts.Code[:]...)
	return handleKeypress(opts.Partition, keys)
}

// ToggleChime builds the keypress sequence that toggles entry/exit chime
// on the given partition.
func ToggleChime(partition uint8) Command {
	return handleKeypress(partition, []Keypress{KeySeven, KeyOne})
}

// KeypressSequence wraps an arbitrary, already-assembled key sequence, for keyfob
// and touchpad shortcut buttons that don't fit the Arm/Disarm/ToggleChime
// shapes.
func KeypressSequence(partition uint8, keys ...Keypress) Command {
	return handleKeypress(partition, keys)
}
