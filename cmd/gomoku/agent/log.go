package agent

import (
	"fmt"
	"os"
)

const logFile = "log.txt"

func (a *Agent) writeLog(v string) {
	if !a.debug {
		return
	}

	f, _ := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	defer f.Close()

	f.WriteString(v + "\n")
}

func (a *Agent) writeLogf(format string, v ...any) {
	if !a.debug {
		return
	}

	f, _ := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	defer f.Close()

	fmt.Fprintf(f, format+"\n", v...)
}
