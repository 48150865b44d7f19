package unittest

var coreMal = []string{
	`(def! *test-failures* (atom 0))`,
	`(def! reset-tests! (fn* () (reset! *test-failures* 0)))`,
	`(def! assert= (fn* (want got)
		(if (= want got)
			true
			(do
				(swap! *test-failures* (fn* (n) (+ n 1)))
				(println "FAIL: wanted" (pr-str want) "got" (pr-str got))
				false))))`,
	`(def! assert (fn* (x) (assert= true (if x true false))))`,
	`(def! run-test-files (fn* (dir files)
		(if (empty? files)
			(deref *test-failures*)
			(let* (f (path-join dir (first files)))
				(do
					(if (directory? f) nil (load-file f))
					(run-test-files dir (rest files)))))))`,
	`(def! run-tests (fn* (dir) (run-test-files dir (list-dir dir))))`,
}

var coreMalNames = []string{
	"*test-failures*",
	"reset-tests!",
	"assert=",
	"assert",
	"run-test-files",
	"run-tests",
}
