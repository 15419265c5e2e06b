//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <ApplicationServices/ApplicationServices.h>
#import <Cocoa/Cocoa.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import "fmt"

// CheckAccessibility reports whether the app may post synthetic mouse events
// and observe global hotkeys.
func CheckAccessibility() bool {
	return C.checkAccessibilityPermission(0) == 1
}

// PromptAccessibility shows the system prompt that opens the Accessibility
// settings pane.
func PromptAccessibility() bool {
	return C.checkAccessibilityPermission(1) == 1
}

// EnsurePermissions checks and requests all required permissions
func EnsurePermissions() error {
	if CheckAccessibility() {
		return nil
	}

	fmt.Println("⚠️  Accessibility permission required for clicking and hotkeys")
	fmt.Println("   Go to: System Settings → Privacy & Security → Accessibility")
	if PromptAccessibility() {
		return nil
	}
	return fmt.Errorf("accessibility permission not granted")
}
