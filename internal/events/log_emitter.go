package events

import (
	"encoding/json"
	"log"
)

func logEvent(name string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal event: %v", err)
		return
	}

	payload := string(data)

	switch event.Type {
	case EventError:
		log.Printf("[ERROR] %s %s", name, payload)
	case EventWarn:
		log.Printf("[WARN] %s %s", name, payload)
	default:
		log.Printf("[INFO] %s %s", name, payload)
	}
}
