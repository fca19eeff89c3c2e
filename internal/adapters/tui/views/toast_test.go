package views

import (
	"testing"
	"time"
)

func TestToast_ShowAndExpire(t *testing.T) {
	m := NewToastModel(time.Millisecond)

	cmd := m.Show(ToastMsg{Text: "Saved"})
	if cmd == nil {
		t.Fatal("expected a dismiss timer")
	}
	if !m.Visible() || !contains(m.View(), "Saved") {
		t.Fatalf("expected toast to be visible, got %q", m.View())
	}

	if !m.Update(cmd()) {
		t.Fatal("expiry message should be consumed")
	}
	if m.Visible() {
		t.Error("toast should be hidden after expiry")
	}
}

func TestToast_StaleTimerKeepsNewerToast(t *testing.T) {
	m := NewToastModel(time.Millisecond)

	first := m.Show(ToastMsg{Text: "first"})
	m.Show(ToastMsg{Text: "second", IsErr: true})

	m.Update(first())
	if !m.Visible() || !contains(m.View(), "second") {
		t.Errorf("stale timer hid the newer toast: %q", m.View())
	}
}

func TestToast_IgnoresOtherMessages(t *testing.T) {
	m := NewToastModel(time.Second)
	if m.Update(ToastMsg{Text: "x"}) {
		t.Error("only expiry messages are consumed")
	}
	if m.View() != "" {
		t.Error("no toast shown yet")
	}
}
