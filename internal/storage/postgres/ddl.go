package postgres

// DDL for the destination schema. EnsureSchema executes these in order;
// every statement is idempotent. depth_measurements_table deliberately
// carries no unique constraint: the upstream schema never had one, and
// adding it here would silently change reprocessing behavior for
// existing deployments.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS float_table (
		platform_number VARCHAR(20) PRIMARY KEY,
		project_name VARCHAR(100),
		wmo_inst_type VARCHAR(10),
		positioning_system VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS meta_table (
		platform_number VARCHAR(20) PRIMARY KEY,
		data_type VARCHAR(50),
		format_version VARCHAR(10),
		handbook_version VARCHAR(10),
		date_creation TIMESTAMPTZ,
		date_update TIMESTAMPTZ,
		ptt VARCHAR(50),
		trans_system VARCHAR(20),
		trans_system_id VARCHAR(50),
		trans_frequency VARCHAR(50),
		positioning_system VARCHAR(50),
		platform_family VARCHAR(100),
		platform_type VARCHAR(50),
		platform_maker VARCHAR(100),
		firmware_version VARCHAR(50),
		manual_version VARCHAR(50),
		float_serial_no VARCHAR(50),
		dac_format_id VARCHAR(20),
		wmo_inst_type VARCHAR(10),
		project_name VARCHAR(100),
		data_centre VARCHAR(10),
		pi_name VARCHAR(200),
		anomaly TEXT,
		battery_type VARCHAR(100),
		battery_packs INTEGER,
		controller_board_type_primary VARCHAR(100),
		controller_board_type_secondary VARCHAR(100),
		serial_no_primary VARCHAR(50),
		serial_no_secondary VARCHAR(50),
		special_features TEXT,
		float_owner VARCHAR(200),
		operating_institution VARCHAR(200),
		customisation TEXT,
		launch_date TIMESTAMPTZ,
		launch_latitude DOUBLE PRECISION,
		launch_longitude DOUBLE PRECISION,
		launch_qc CHAR(1),
		start_date TIMESTAMPTZ,
		start_date_qc CHAR(1),
		startup_date TIMESTAMPTZ,
		startup_date_qc CHAR(1),
		end_mission_date TIMESTAMPTZ,
		end_mission_status CHAR(1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS profile_table (
		profile_id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		cycle_number INTEGER,
		juld TIMESTAMPTZ,
		juld_qc CHAR(1),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		position_qc CHAR(1),
		direction CHAR(1),
		data_mode CHAR(1),
		vertical_sampling_scheme TEXT,
		config_mission_number INTEGER,
		profile_pres_qc CHAR(1),
		profile_temp_qc CHAR(1),
		profile_psal_qc CHAR(1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, cycle_number, direction)
	);`,

	`CREATE TABLE IF NOT EXISTS depth_measurements_table (
		measurement_id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profile_table(profile_id),
		platform_number VARCHAR(20) NOT NULL,
		cycle_number INTEGER,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		pres DOUBLE PRECISION,
		temp DOUBLE PRECISION,
		psal DOUBLE PRECISION,
		pres_qc CHAR(1),
		temp_qc CHAR(1),
		psal_qc CHAR(1),
		pres_adjusted DOUBLE PRECISION,
		temp_adjusted DOUBLE PRECISION,
		psal_adjusted DOUBLE PRECISION,
		pres_adjusted_qc CHAR(1),
		temp_adjusted_qc CHAR(1),
		psal_adjusted_qc CHAR(1),
		pres_adjusted_error DOUBLE PRECISION,
		temp_adjusted_error DOUBLE PRECISION,
		psal_adjusted_error DOUBLE PRECISION,
		doxy DOUBLE PRECISION,
		doxy_qc CHAR(1),
		doxy_adjusted DOUBLE PRECISION,
		doxy_adjusted_qc CHAR(1),
		doxy_adjusted_error DOUBLE PRECISION,
		nitrate DOUBLE PRECISION,
		nitrate_qc CHAR(1),
		nitrate_adjusted DOUBLE PRECISION,
		nitrate_adjusted_qc CHAR(1),
		nitrate_adjusted_error DOUBLE PRECISION,
		ph_in_situ_total DOUBLE PRECISION,
		ph_in_situ_total_qc CHAR(1),
		ph_in_situ_total_adjusted DOUBLE PRECISION,
		ph_in_situ_total_adjusted_qc CHAR(1),
		ph_in_situ_total_adjusted_error DOUBLE PRECISION
	);`,

	`CREATE TABLE IF NOT EXISTS trajectory_table (
		trajectory_id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		cycle_number INTEGER,
		juld_first_location TIMESTAMPTZ,
		juld_last_location TIMESTAMPTZ,
		juld_first_message TIMESTAMPTZ,
		juld_last_message TIMESTAMPTZ,
		juld_ascent_start TIMESTAMPTZ,
		juld_ascent_end TIMESTAMPTZ,
		juld_descent_start TIMESTAMPTZ,
		juld_descent_end TIMESTAMPTZ,
		juld_park_start TIMESTAMPTZ,
		juld_park_end TIMESTAMPTZ,
		juld_transmission_start TIMESTAMPTZ,
		juld_transmission_end TIMESTAMPTZ,
		first_latitude DOUBLE PRECISION,
		first_longitude DOUBLE PRECISION,
		last_latitude DOUBLE PRECISION,
		last_longitude DOUBLE PRECISION,
		positioning_system VARCHAR(50),
		data_mode CHAR(1),
		config_mission_number INTEGER,
		grounded CHAR(1),
		representative_park_pressure DOUBLE PRECISION,
		representative_park_pressure_status CHAR(1),
		cycle_number_adjusted INTEGER,
		juld_first_location_status CHAR(1),
		juld_last_location_status CHAR(1),
		juld_first_message_status CHAR(1),
		juld_last_message_status CHAR(1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, cycle_number)
	);`,

	`CREATE TABLE IF NOT EXISTS trajectory_depth_table (
		id BIGSERIAL PRIMARY KEY,
		trajectory_id BIGINT NOT NULL REFERENCES trajectory_table(trajectory_id),
		platform_number VARCHAR(20) NOT NULL,
		cycle_number INTEGER,
		measurement_code INTEGER,
		measurement_index BIGINT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		juld TIMESTAMPTZ,
		juld_status CHAR(1),
		juld_adjusted TIMESTAMPTZ,
		juld_adjusted_qc CHAR(1),
		juld_adjusted_status CHAR(1),
		position_accuracy CHAR(1),
		axes_error_ellipse_major DOUBLE PRECISION,
		axes_error_ellipse_minor DOUBLE PRECISION,
		axes_error_ellipse_angle DOUBLE PRECISION,
		satellite_name VARCHAR(10),
		positioning_system VARCHAR(50),
		position_qc CHAR(1),
		pres DOUBLE PRECISION,
		pres_qc CHAR(1),
		pres_adjusted DOUBLE PRECISION,
		pres_adjusted_qc CHAR(1),
		pres_adjusted_error DOUBLE PRECISION,
		temp DOUBLE PRECISION,
		temp_qc CHAR(1),
		temp_adjusted DOUBLE PRECISION,
		temp_adjusted_qc CHAR(1),
		temp_adjusted_error DOUBLE PRECISION,
		psal DOUBLE PRECISION,
		psal_qc CHAR(1),
		psal_adjusted DOUBLE PRECISION,
		psal_adjusted_qc CHAR(1),
		psal_adjusted_error DOUBLE PRECISION,
		UNIQUE (platform_number, cycle_number, measurement_code, juld)
	);`,

	`CREATE TABLE IF NOT EXISTS parameter_table (
		id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		parameter VARCHAR(64) NOT NULL,
		parameter_sensor VARCHAR(100),
		parameter_units VARCHAR(50),
		parameter_accuracy VARCHAR(50),
		parameter_resolution VARCHAR(50),
		predeployment_calib_equation TEXT,
		coefficient TEXT,
		comment TEXT,
		UNIQUE (platform_number, parameter)
	);`,

	`CREATE TABLE IF NOT EXISTS sensor_table (
		id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		sensor VARCHAR(100) NOT NULL,
		sensor_maker VARCHAR(100),
		sensor_model VARCHAR(100),
		sensor_serial_no VARCHAR(50),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, sensor)
	);`,

	`CREATE TABLE IF NOT EXISTS config_table (
		id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		config_parameter_name VARCHAR(200) NOT NULL,
		config_parameter_value TEXT,
		config_mission_number INTEGER,
		config_mission_comment TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, config_parameter_name)
	);`,

	`CREATE TABLE IF NOT EXISTS launch_config_table (
		id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		launch_config_parameter_name VARCHAR(200) NOT NULL,
		launch_config_parameter_value TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, launch_config_parameter_name)
	);`,

	`CREATE TABLE IF NOT EXISTS history_table (
		id BIGSERIAL PRIMARY KEY,
		platform_number VARCHAR(20) NOT NULL,
		cycle_number INTEGER,
		history_institution VARCHAR(100),
		history_step VARCHAR(100),
		history_software VARCHAR(100),
		history_software_release VARCHAR(50),
		history_reference VARCHAR(200),
		history_date TIMESTAMPTZ,
		history_action VARCHAR(100),
		history_parameter VARCHAR(100),
		history_start_pres DOUBLE PRECISION,
		history_stop_pres DOUBLE PRECISION,
		history_previous_value VARCHAR(100),
		history_qctest VARCHAR(100),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (platform_number, history_institution, history_step, history_date, history_action)
	);`,
}
