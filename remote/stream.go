// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package remote

import (
	"io"
	"sync"

	"github.com/gorilla/websocket"
)

// Stream implements the jsonrpc2.ObjectStream interface for a websocket
// connection. Each JSON-RPC message is sent as a single text message.
type Stream struct {
	conn *websocket.Conn

	// websocket connections support one concurrent writer
	crit sync.Mutex
}

// NewStream is the preferred method of initialisation for the Stream type.
func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

// WriteObject implements the jsonrpc2.ObjectStream interface.
func (s *Stream) WriteObject(obj any) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.conn.WriteJSON(obj)
}

// ReadObject implements the jsonrpc2.ObjectStream interface.
func (s *Stream) ReadObject(v any) error {
	err := s.conn.ReadJSON(v)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return io.EOF
	}
	return err
}

// Close implements the jsonrpc2.ObjectStream interface.
func (s *Stream) Close() error {
	return s.conn.Close()
}
