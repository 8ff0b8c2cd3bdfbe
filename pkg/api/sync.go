package api

import "encoding/json"

// Operation представляет одну строку одной из таблиц (decks, cards, reviews)
// Row передается как есть: сервер не теряет поля, которые он не хранит
type Operation struct {
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}

// SyncRequest представляет запрос на синхронизацию от клиента
type SyncRequest struct {
	Operations []Operation `json:"operations"` // локальные изменения клиента
	LastSync   int64       `json:"last_sync"`  // последний server_seq, полностью учтенный клиентом
}

// SyncResponse представляет ответ сервера на синхронизацию
type SyncResponse struct {
	Remote []Operation `json:"remote"` // изменения, которых у клиента нет, по (server_seq, created_at)
	Local  []Operation `json:"local"`  // операции клиента с проставленным server_seq
}

// SyncStatusResponse содержит текущий high-water mark хранилища аккаунта
type SyncStatusResponse struct {
	MaxSeq int64 `json:"max_seq"`
}

// RowMeta is the ordering part of any synchronized row.
type RowMeta struct {
	ServerSeq int64   `json:"server_seq"`
	CreatedAt float64 `json:"created_at"`
}

// Meta decodes the ordering fields of the operation's row.
func (o Operation) Meta() (RowMeta, error) {
	var meta RowMeta
	if err := json.Unmarshal(o.Row, &meta); err != nil {
		return RowMeta{}, err
	}
	return meta, nil
}
