package paymenter

import "fmt"

// mysqlAdmin provisions and drops the application database through the mysql
// command-line client. Statements are fed over stdin so credentials never
// appear in a command line, and every provisioning statement is idempotent.
type mysqlAdmin struct {
	run *Runner
}

func newMySQLAdmin(run *Runner) *mysqlAdmin {
	return &mysqlAdmin{run: run}
}

func (m *mysqlAdmin) provision(db DBCredentials) StepResult {
	sql := fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS `%s`;\n"+
			"CREATE USER IF NOT EXISTS '%s'@'localhost' IDENTIFIED BY '%s';\n"+
			"GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'localhost';\n"+
			"FLUSH PRIVILEGES;\n",
		db.Name, db.User, db.Password, db.Name, db.User,
	)
	return m.run.RunInput(sql, "mysql", "-u", "root")
}

func (m *mysqlAdmin) drop(db DBCredentials) StepResult {
	sql := fmt.Sprintf(
		"DROP DATABASE IF EXISTS `%s`;\n"+
			"DROP USER IF EXISTS '%s'@'localhost';\n"+
			"FLUSH PRIVILEGES;\n",
		db.Name, db.User,
	)
	return m.run.RunInput(sql, "mysql", "-u", "root")
}
