package gateway

import (
	"encoding/json"

	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/response"
)

// Event names trên kênh "comments"
const (
	EventSubscribe      = "subscribeToBook"
	EventUnsubscribe    = "unsubscribeFromBook"
	EventAddComment     = "addComment"
	EventGetAllComments = "getAllComments"
	EventNewComment     = "newComment"
	EventException      = "exception"
)

// Inbound - frame client gửi lên; ID (nếu có) được echo lại trong reply
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	ID    json.RawMessage `json:"id,omitempty"`
}

// Message - frame server gửi xuống (reply, broadcast, exception)
type Message struct {
	Event string          `json:"event"`
	Data  interface{}     `json:"data"`
	ID    json.RawMessage `json:"id,omitempty"`
}

// Exception - cùng shape với HTTP envelope, path thay bằng event
type Exception struct {
	Status string        `json:"status"`
	Data   ExceptionData `json:"data"`
	Code   int           `json:"code"`
}

type ExceptionData struct {
	Event string             `json:"event"`
	Error response.ErrorBody `json:"error"`
}

// SubscriptionAck - reply cho subscribe/unsubscribe
type SubscriptionAck struct {
	BookID     string `json:"bookId"`
	Subscribed bool   `json:"subscribed"`
}

func newException(in Inbound, err error) Message {
	resolved := apperr.Resolve(err)
	return Message{
		Event: EventException,
		Data: Exception{
			Status: "fail",
			Data: ExceptionData{
				Event: in.Event,
				Error: response.ErrorBody{
					Message: resolved.Message,
					Fields:  resolved.Fields,
				},
			},
			Code: resolved.Code,
		},
		ID: in.ID,
	}
}
