package towererr

// Troubleshooting returns user-facing hints for an error, keyed by its kind.
// Nil means there is nothing useful to suggest.
func Troubleshooting(err error) []string {
	switch KindOf(err) {
	case DeviceNotFound:
		return []string{
			"Check that the tower is plugged in (lsusb should list 16de:000c)",
			"On Linux, install a udev rule granting access to the device",
			"Use --config to point at a file with a different vendor/product ID",
		}
	case InterfaceNotFound, EndpointNotFound:
		return []string{
			"The device enumerated but does not look like a supported tower",
			"Unplug and reconnect the tower, then retry",
		}
	case TransportTimeout, TransportError:
		return []string{
			"Another process may hold the device; close other xvgu instances",
			"Increase device.write_timeout / device.read_timeout in the config file",
		}
	case BuzzerStuckOn:
		return []string{
			"The buzzer is still sounding; run 'xvgu buzzer --off'",
			"Raise buzzer.reopen_attempts if the tower re-enumerates slowly",
		}
	case MalformedResponse:
		return []string{
			"Retry the read; use --passthrough to print the raw bytes unchecked",
		}
	case UnknownEnumValue, UnknownColorName, ValueOutOfRange, InvalidArgument:
		return []string{
			"Run 'xvgu <command> --help' for accepted values",
			"Run 'xvgu colors' to list colour names",
		}
	default:
		return nil
	}
}
