package event

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSerialize(t *testing.T) {
	val, err := Serialize(Func("audit"))
	assert.NoError(t, err)
	assert.Equal(t, "audit", val)

	val, err = Serialize(Static("Mailer", "notify"))
	assert.NoError(t, err)
	assert.Equal(t, "Mailer::notify", val)

	_, err = Serialize(Closure(func(*Event) error { return nil }))
	assert.ErrorIs(t, err, ErrCannotPersistClosure)

	_, err = Serialize(Method(NewScope(), "onSave", func(*Event) error { return nil }))
	assert.ErrorIs(t, err, ErrCannotPersistInstanceBinding)

	_, err = Serialize(nil)
	assert.Error(t, err)

	_, err = Serialize(FuncBinding{Name: "Mailer::notify"})
	assert.ErrorIs(t, err, ErrInvalidBindingName, "A function name with '::' would load back as a static binding")
}

func TestFunc_StaticSeparator(t *testing.T) {
	assert.Panics(t, func() {
		Func("Mailer::notify")
	})
	assert.False(t, Persistable(FuncBinding{Name: "Mailer::notify"}))
}

func TestDeserialize(t *testing.T) {
	assert.Equal(t, Func("audit"), Deserialize("audit"))
	assert.Equal(t, Static("Mailer", "notify"), Deserialize("Mailer::notify"))
	assert.Equal(t, Static("ns", "Type::method"), Deserialize("ns::Type::method"), "Only the first separator splits")

	for _, b := range []Binding{Func("audit"), Static("Mailer", "notify")} {
		val, err := Serialize(b)
		assert.NoError(t, err)
		assert.Equal(t, b, Deserialize(val), "Round trip should be lossless")
	}
}

func TestStorageKey(t *testing.T) {
	key := StorageKey("save", "audit")
	assert.Equal(t, "Gwilym_Event,bind,save,a5a63d9b90e6bfe9261e70b66afec721", key)
	assert.Equal(t, key, StorageKey("save", "audit"), "Keys should be deterministic")
	assert.NotEqual(t, key, StorageKey("save", "Mailer::notify"))
	assert.NotEqual(t, key, StorageKey("saved", "audit"))
	assert.Equal(t, "Gwilym_Event,bind,save,*", StoragePattern("save"))
}

func TestPersistable(t *testing.T) {
	assert.True(t, Persistable(Func("audit")))
	assert.True(t, Persistable(Static("Mailer", "notify")))
	assert.False(t, Persistable(Closure(func(*Event) error { return nil })))
	assert.False(t, Persistable(nil))
}

func TestValidateEventName(t *testing.T) {
	assert.NoError(t, ValidateEventName("user.saved"))
	assert.NoError(t, ValidateEventName("click#1"))
	for _, name := range []string{"", "a,b", "a*", "a?", "a[b]", `a\b`} {
		assert.ErrorIs(t, ValidateEventName(name), ErrInvalidEventName, "Name '%s' should be rejected", name)
	}
}
