package models

// Config menyimpan informasi koneksi database dan identitas room default.
type Config struct {
	DBHost        string `json:"db_host"`
	DBUser        string `json:"db_user"`
	DBPassword    string `json:"db_password"`
	DBName        string `json:"db_name"`
	DBSSLMode     string `json:"db_sslmode"`
	DefaultRoomID string `json:"default_room_id"`
	LexiconFile   string `json:"lexicon_file"`
}
