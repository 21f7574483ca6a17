//go:build windows

package injectorwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

const (
	keyEventFlagKeyUp = 0x0002 // KEYEVENTF_KEYUP
	vkShift           = 0x10   // VK_SHIFT
)

// keyboardInput mirrors the Win32 KEYBDINPUT structure, padded to the size
// of the INPUT union.
type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
	padding     [8]byte
}

// input mirrors the Win32 INPUT structure with type INPUT_KEYBOARD.
type input struct {
	inputType uint32
	ki        keyboardInput
}

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// virtualKeys translates the repo-wide Linux key codes into Windows virtual
// key codes.
var virtualKeys = map[contracts.KeyCode]uint16{
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5',
	7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	12: 0xBD, // VK_OEM_MINUS
	13: 0xBB, // VK_OEM_PLUS
	16: 'Q', 17: 'W', 18: 'E', 19: 'R', 20: 'T',
	21: 'Y', 22: 'U', 23: 'I', 24: 'O', 25: 'P',
	26: 0xDB, // VK_OEM_4 '['
	27: 0xDD, // VK_OEM_6 ']'
	30: 'A', 31: 'S', 32: 'D', 33: 'F', 34: 'G',
	35: 'H', 36: 'J', 37: 'K', 38: 'L',
	39: 0xBA, // VK_OEM_1 ';'
	40: 0xDE, // VK_OEM_7 '\''
	41: 0xC0, // VK_OEM_3 '`'
	43: 0xDC, // VK_OEM_5 '\\'
	44: 'Z', 45: 'X', 46: 'C', 47: 'V', 48: 'B',
	49: 'N', 50: 'M',
	51: 0xBC, // VK_OEM_COMMA
	52: 0xBE, // VK_OEM_PERIOD
	53: 0xBF, // VK_OEM_2 '/'
	57: 0x20, // VK_SPACE
}

// Injector delivers key events through the Win32 SendInput call.
type Injector struct {
	logger contracts.Logger
	mu     sync.Mutex // keeps shift/base pairs contiguous
}

// NewKeyInjector creates a SendInput-backed injector.
func NewKeyInjector(logger contracts.Logger) (contracts.KeyInjector, error) {
	logger.Info("SendInput key injector created")
	return &Injector{logger: logger}, nil
}

// KeyDown presses the key, pressing shift first when requested.
func (i *Injector) KeyDown(code contracts.KeyCode, shift bool) error {
	vk, ok := virtualKeys[code]
	if !ok {
		return fmt.Errorf("no virtual key for code %d", code)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	inputs := make([]input, 0, 2)
	if shift {
		inputs = append(inputs, keyInput(vkShift, 0))
	}
	inputs = append(inputs, keyInput(vk, 0))
	return send(inputs)
}

// KeyUp releases the key, then shift when requested.
func (i *Injector) KeyUp(code contracts.KeyCode, shift bool) error {
	vk, ok := virtualKeys[code]
	if !ok {
		return fmt.Errorf("no virtual key for code %d", code)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	inputs := make([]input, 0, 2)
	inputs = append(inputs, keyInput(vk, keyEventFlagKeyUp))
	if shift {
		inputs = append(inputs, keyInput(vkShift, keyEventFlagKeyUp))
	}
	return send(inputs)
}

// Close releases no resources; SendInput is stateless.
func (i *Injector) Close() error {
	return nil
}

func keyInput(vk uint16, flags uint32) input {
	return input{
		inputType: 1, // INPUT_KEYBOARD
		ki:        keyboardInput{wVk: vk, dwFlags: flags},
	}
}

func send(inputs []input) error {
	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		if err != nil && !errors.Is(err, windows.ERROR_SUCCESS) {
			return fmt.Errorf("SendInput delivered %d of %d events: %w", sent, len(inputs), err)
		}
		return fmt.Errorf("SendInput delivered %d of %d events", sent, len(inputs))
	}
	return nil
}
