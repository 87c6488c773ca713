package messaging

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// MaxMessageSize bounds a single incoming frame.
const MaxMessageSize = 1 << 20

const (
	CmdPing     = "PING"
	CmdGenerate = "GENERATE"

	StatusPong     = "pong"
	StatusStarted  = "started"
	StatusFinished = "finished"
	StatusError    = "error"
)

// Message is the JSON body of every frame in both directions.
//
// Requests carry Cmd plus, for GENERATE, Source and Dest (and optionally
// Sizes). Replies echo Id and Cmd and carry Status; a GENERATE gets a
// "started" reply with Busy set and later a "finished" reply with the report.
type Message struct {
	Id      string          `json:"id,omitempty"`
	Cmd     string          `json:"cmd"`
	Source  string          `json:"source,omitempty"`
	Dest    string          `json:"dest,omitempty"`
	Sizes   []int           `json:"sizes,omitempty"`
	Busy    bool            `json:"busy"`
	Status  string          `json:"status,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Report  json.RawMessage `json:"report,omitempty"`
}

// Conn reads and writes length-prefixed (uint32, little endian) JSON frames.
// Writes are safe for concurrent use; reads are not.
type Conn struct {
	r io.Reader

	writeMutex sync.Mutex
	w          io.Writer
}

func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{r: r, w: w}
}

// ReadMessage reads the next frame. io.EOF means the peer closed cleanly.
func (c *Conn) ReadMessage() (*Message, error) {
	var length uint32
	// Read 4 bytes length
	if err := binary.Read(c.r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("message of %d bytes exceeds limit of %d", length, MaxMessageSize)
	}

	// Read content
	buf := make([]byte, length)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(buf, &msg); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return &msg, nil
}

// WriteMessage sends msg as one frame.
func (c *Conn) WriteMessage(msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	var frame bytes.Buffer
	frame.Grow(4 + len(body))
	binary.Write(&frame, binary.LittleEndian, uint32(len(body)))
	frame.Write(body)

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	_, err = c.w.Write(frame.Bytes())
	return err
}

// Reply returns a response skeleton correlated with msg.
func Reply(msg *Message) *Message {
	return &Message{Id: msg.Id, Cmd: msg.Cmd}
}
