package path

var coreMal = []string{
	`(def! load-file-from (fn* (dir f) (load-file (path-join dir f))))`,
}

var coreMalNames = []string{
	"load-file-from",
}
