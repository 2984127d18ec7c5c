package sqlite

// SQLite flavor of the destination schema. Types are affinities rather
// than the Postgres declarations; the table and column names match so
// the shared column lists apply unchanged.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS float_table (
		platform_number TEXT PRIMARY KEY,
		project_name TEXT,
		wmo_inst_type TEXT,
		positioning_system TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS meta_table (
		platform_number TEXT PRIMARY KEY,
		data_type TEXT,
		format_version TEXT,
		handbook_version TEXT,
		date_creation TIMESTAMP,
		date_update TIMESTAMP,
		ptt TEXT,
		trans_system TEXT,
		trans_system_id TEXT,
		trans_frequency TEXT,
		positioning_system TEXT,
		platform_family TEXT,
		platform_type TEXT,
		platform_maker TEXT,
		firmware_version TEXT,
		manual_version TEXT,
		float_serial_no TEXT,
		dac_format_id TEXT,
		wmo_inst_type TEXT,
		project_name TEXT,
		data_centre TEXT,
		pi_name TEXT,
		anomaly TEXT,
		battery_type TEXT,
		battery_packs INTEGER,
		controller_board_type_primary TEXT,
		controller_board_type_secondary TEXT,
		serial_no_primary TEXT,
		serial_no_secondary TEXT,
		special_features TEXT,
		float_owner TEXT,
		operating_institution TEXT,
		customisation TEXT,
		launch_date TIMESTAMP,
		launch_latitude REAL,
		launch_longitude REAL,
		launch_qc TEXT,
		start_date TIMESTAMP,
		start_date_qc TEXT,
		startup_date TIMESTAMP,
		startup_date_qc TEXT,
		end_mission_date TIMESTAMP,
		end_mission_status TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS profile_table (
		profile_id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		cycle_number INTEGER,
		juld TIMESTAMP,
		juld_qc TEXT,
		latitude REAL,
		longitude REAL,
		position_qc TEXT,
		direction TEXT,
		data_mode TEXT,
		vertical_sampling_scheme TEXT,
		config_mission_number INTEGER,
		profile_pres_qc TEXT,
		profile_temp_qc TEXT,
		profile_psal_qc TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, cycle_number, direction)
	);`,

	`CREATE TABLE IF NOT EXISTS depth_measurements_table (
		measurement_id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL REFERENCES profile_table(profile_id),
		platform_number TEXT NOT NULL,
		cycle_number INTEGER,
		latitude REAL,
		longitude REAL,
		pres REAL,
		temp REAL,
		psal REAL,
		pres_qc TEXT,
		temp_qc TEXT,
		psal_qc TEXT,
		pres_adjusted REAL,
		temp_adjusted REAL,
		psal_adjusted REAL,
		pres_adjusted_qc TEXT,
		temp_adjusted_qc TEXT,
		psal_adjusted_qc TEXT,
		pres_adjusted_error REAL,
		temp_adjusted_error REAL,
		psal_adjusted_error REAL,
		doxy REAL,
		doxy_qc TEXT,
		doxy_adjusted REAL,
		doxy_adjusted_qc TEXT,
		doxy_adjusted_error REAL,
		nitrate REAL,
		nitrate_qc TEXT,
		nitrate_adjusted REAL,
		nitrate_adjusted_qc TEXT,
		nitrate_adjusted_error REAL,
		ph_in_situ_total REAL,
		ph_in_situ_total_qc TEXT,
		ph_in_situ_total_adjusted REAL,
		ph_in_situ_total_adjusted_qc TEXT,
		ph_in_situ_total_adjusted_error REAL
	);`,

	`CREATE TABLE IF NOT EXISTS trajectory_table (
		trajectory_id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		cycle_number INTEGER,
		juld_first_location TIMESTAMP,
		juld_last_location TIMESTAMP,
		juld_first_message TIMESTAMP,
		juld_last_message TIMESTAMP,
		juld_ascent_start TIMESTAMP,
		juld_ascent_end TIMESTAMP,
		juld_descent_start TIMESTAMP,
		juld_descent_end TIMESTAMP,
		juld_park_start TIMESTAMP,
		juld_park_end TIMESTAMP,
		juld_transmission_start TIMESTAMP,
		juld_transmission_end TIMESTAMP,
		first_latitude REAL,
		first_longitude REAL,
		last_latitude REAL,
		last_longitude REAL,
		positioning_system TEXT,
		data_mode TEXT,
		config_mission_number INTEGER,
		grounded TEXT,
		representative_park_pressure REAL,
		representative_park_pressure_status TEXT,
		cycle_number_adjusted INTEGER,
		juld_first_location_status TEXT,
		juld_last_location_status TEXT,
		juld_first_message_status TEXT,
		juld_last_message_status TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, cycle_number)
	);`,

	`CREATE TABLE IF NOT EXISTS trajectory_depth_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trajectory_id INTEGER NOT NULL REFERENCES trajectory_table(trajectory_id),
		platform_number TEXT NOT NULL,
		cycle_number INTEGER,
		measurement_code INTEGER,
		measurement_index INTEGER,
		latitude REAL,
		longitude REAL,
		juld TIMESTAMP,
		juld_status TEXT,
		juld_adjusted TIMESTAMP,
		juld_adjusted_qc TEXT,
		juld_adjusted_status TEXT,
		position_accuracy TEXT,
		axes_error_ellipse_major REAL,
		axes_error_ellipse_minor REAL,
		axes_error_ellipse_angle REAL,
		satellite_name TEXT,
		positioning_system TEXT,
		position_qc TEXT,
		pres REAL,
		pres_qc TEXT,
		pres_adjusted REAL,
		pres_adjusted_qc TEXT,
		pres_adjusted_error REAL,
		temp REAL,
		temp_qc TEXT,
		temp_adjusted REAL,
		temp_adjusted_qc TEXT,
		temp_adjusted_error REAL,
		psal REAL,
		psal_qc TEXT,
		psal_adjusted REAL,
		psal_adjusted_qc TEXT,
		psal_adjusted_error REAL,
		UNIQUE (platform_number, cycle_number, measurement_code, juld)
	);`,

	`CREATE TABLE IF NOT EXISTS parameter_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		parameter TEXT NOT NULL,
		parameter_sensor TEXT,
		parameter_units TEXT,
		parameter_accuracy TEXT,
		parameter_resolution TEXT,
		predeployment_calib_equation TEXT,
		coefficient TEXT,
		comment TEXT,
		UNIQUE (platform_number, parameter)
	);`,

	`CREATE TABLE IF NOT EXISTS sensor_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		sensor TEXT NOT NULL,
		sensor_maker TEXT,
		sensor_model TEXT,
		sensor_serial_no TEXT,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, sensor)
	);`,

	`CREATE TABLE IF NOT EXISTS config_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		config_parameter_name TEXT NOT NULL,
		config_parameter_value TEXT,
		config_mission_number INTEGER,
		config_mission_comment TEXT,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, config_parameter_name)
	);`,

	`CREATE TABLE IF NOT EXISTS launch_config_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		launch_config_parameter_name TEXT NOT NULL,
		launch_config_parameter_value TEXT,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, launch_config_parameter_name)
	);`,

	`CREATE TABLE IF NOT EXISTS history_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		platform_number TEXT NOT NULL,
		cycle_number INTEGER,
		history_institution TEXT,
		history_step TEXT,
		history_software TEXT,
		history_software_release TEXT,
		history_reference TEXT,
		history_date TIMESTAMP,
		history_action TEXT,
		history_parameter TEXT,
		history_start_pres REAL,
		history_stop_pres REAL,
		history_previous_value TEXT,
		history_qctest TEXT,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, history_institution, history_step, history_date, history_action)
	);`,
}
