package handlers

type Response struct {
	Result interface{} `json:"result"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

// ErrorResponse repeats the detail in Result so clients reading only the
// result field still get the message.
type ErrorResponse struct {
	Result string  `json:"result"`
	Errors []Error `json:"errors"`
}
