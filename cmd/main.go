package main

import (
	"os"

	"asterisk-tts/internal/agi"
)

// Вызов из диалплана:
//
//	same => n,AGI(asterisk-tts,"Text to synthesize","/path/to/output.wav")
//
// Код возврата 0 - файл записан, 1 - любая ошибка.
func main() {
	os.Exit(agi.Execute(os.Args[1:], agi.Options{}))
}
