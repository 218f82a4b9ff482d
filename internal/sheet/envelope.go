package sheet

// SuccessEnvelope ответ конвертера при успехе
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Data    []Link `json:"data"`
}

// FailureEnvelope ответ конвертера при ошибке
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Envelope общий вид ответа для чтения на стороне клиента
type Envelope struct {
	Success bool   `json:"success"`
	Data    []Link `json:"data"`
	Error   string `json:"error"`
}

func Success(links []Link) SuccessEnvelope {
	if links == nil {
		links = []Link{}
	}
	return SuccessEnvelope{Success: true, Data: links}
}

func Failure(err error) FailureEnvelope {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return FailureEnvelope{Success: false, Error: msg}
}
