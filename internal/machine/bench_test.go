package machine

import "testing"

func BenchmarkTransition_UserTyped(b *testing.B) {
	s := NewState(NullString{}, NullString{}, Config{MaxDigits: 15})
	ev := UserTyped{RawInput: "+7 (900) 123-45-67"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Transition(s, ev)
	}
}

func BenchmarkTransition_SyncConfig(b *testing.B) {
	s := NewState(Some("+44 20 7946 0958"), NullString{}, Config{MaxDigits: 15})
	ev := SyncConfig{Config: Config{MaxDigits: 8, Plus: true}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Transition(s, ev)
	}
}

func BenchmarkTransition_Unknown(b *testing.B) {
	s := NewState(Some("+1 555"), NullString{}, Config{MaxDigits: 15})
	ev := Unknown{Name: "NOOP"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Transition(s, ev)
	}
}
