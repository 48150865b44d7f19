package internal

// coreMal holds the definitions every VM evaluates at startup, in order.
var coreMal = []string{
	`(def! not (fn* (a) (if a false true)))`,
	`(def! load-file (fn* (f) (eval (read-string (str "(do " (slurp f) "\nnil)")))))`,
}

var coreMalNames = []string{"not", "load-file"}
