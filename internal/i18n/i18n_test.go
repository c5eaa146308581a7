// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestT_KnownAndUnknownIDs(t *testing.T) {
	Init("en")
	if got := T("accounts.badge.active"); got != "Active" {
		t.Fatalf("expected English translation, got %q", got)
	}
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown id must fall back to itself, got %q", got)
	}
}

func TestT_Interpolation(t *testing.T) {
	Init("en")
	got := T("notify.create_success", "alice")
	if got != "Account alice created" {
		t.Fatalf("interpolation failed, got %q", got)
	}
}

func TestSetLang_SwitchesTranslations(t *testing.T) {
	SetLang("de")
	defer SetLang("en")
	if got := T("accounts.badge.disabled"); got != "Deaktiviert" {
		t.Fatalf("expected German translation, got %q", got)
	}
}

func TestGetAvailableLocales(t *testing.T) {
	locales := GetAvailableLocales()
	if locales["en"] != "English" {
		t.Fatalf("expected en → English, got %q", locales["en"])
	}
	if locales["de"] != "Deutsch" {
		t.Fatalf("expected de → Deutsch, got %q", locales["de"])
	}
}
