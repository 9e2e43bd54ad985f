package entities

// KVSlot is one persisted collection in the postgres key-value store.
type KVSlot struct {
	Key   string `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	Timestamp
}

func (KVSlot) TableName() string {
	return "kv_slots"
}
