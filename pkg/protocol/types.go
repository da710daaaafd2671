package protocol

// Payload is the JSON payload of a history record. Operation records
// (move/exclude/defer/undo/redo) carry OpID, Kind, From and To; diagnostic
// records use whichever fields apply and leave the rest empty.
type Payload struct {
	OpID string `json:"op_id,omitempty"`
	// Kind is the original operation kind (move|exclude|defer). Undo and
	// redo records repeat it so the record is self-describing.
	Kind  string `json:"type,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Src   string `json:"src,omitempty"`
	Error string `json:"error,omitempty"`
}

// HistoryRecord is one row of the append-only history log. ID is the
// monotonic sequence number reconstruction replays in ascending order.
type HistoryRecord struct {
	ID      int64
	TS      string
	Action  string
	Payload Payload
}

// AuditRecord is one row of the append-only audit log. Character and Folder
// are set for move operations only. Checksum is the xxhash64 of the file
// content at confirmation time, hex-encoded.
type AuditRecord struct {
	ID        int64
	TS        string
	Op        string
	Src       string
	Dst       string
	Character string
	Folder    string
	Checksum  string
}

// InputRoot is one configured input directory. Enabled and not-done roots
// participate in scanning.
type InputRoot struct {
	Path    string
	Enabled bool
	Done    bool
}
