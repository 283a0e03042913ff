package testsupport

// ffprobe output captured for the reference media used across package tests.
// Sizes in the format records are what ffprobe reports; the probed size
// always comes from the file on disk.

// ImageJPEGProbe is a single 800x450 baseline JPEG.
const ImageJPEGProbe = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "mjpeg",
            "codec_long_name": "Motion JPEG",
            "profile": "Baseline",
            "codec_type": "video",
            "codec_tag_string": "[0][0][0][0]",
            "codec_tag": "0x0000",
            "width": 800,
            "height": 450,
            "coded_width": 800,
            "coded_height": 450,
            "has_b_frames": 0,
            "sample_aspect_ratio": "1:1",
            "display_aspect_ratio": "16:9",
            "pix_fmt": "yuvj420p",
            "level": -99,
            "color_range": "pc",
            "r_frame_rate": "25/1",
            "avg_frame_rate": "0/0",
            "time_base": "1/25",
            "start_pts": 0,
            "start_time": "0.000000",
            "duration_ts": 1,
            "duration": "0.040000",
            "bits_per_raw_sample": "8",
            "disposition": {
                "default": 0, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            }
        }
    ],
    "format": {
        "filename": "image.jpg",
        "nb_streams": 1,
        "nb_programs": 0,
        "format_name": "image2",
        "format_long_name": "image2 sequence",
        "start_time": "0.000000",
        "duration": "0.040000",
        "size": "41349",
        "bit_rate": "8269800",
        "probe_score": 50
    }
}`

// AudioMP3Probe is a tagged stereo MP3 with embedded cover art.
const AudioMP3Probe = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "mp3",
            "codec_long_name": "MP3 (MPEG audio layer 3)",
            "codec_type": "audio",
            "codec_tag_string": "[0][0][0][0]",
            "codec_tag": "0x0000",
            "sample_fmt": "fltp",
            "sample_rate": "44100",
            "channels": 2,
            "channel_layout": "stereo",
            "bits_per_sample": 0,
            "r_frame_rate": "0/0",
            "avg_frame_rate": "0/0",
            "time_base": "1/14112000",
            "start_pts": 353600,
            "start_time": "0.025057",
            "duration_ts": 127558656,
            "duration": "9.039002",
            "bit_rate": "180000",
            "disposition": {
                "default": 0, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            },
            "tags": {
                "encoder": "LAME3.100"
            }
        },
        {
            "index": 1,
            "codec_name": "mjpeg",
            "codec_long_name": "Motion JPEG",
            "profile": "Baseline",
            "codec_type": "video",
            "width": 300,
            "height": 300,
            "sample_aspect_ratio": "1:1",
            "display_aspect_ratio": "1:1",
            "pix_fmt": "yuvj420p",
            "r_frame_rate": "90000/1",
            "avg_frame_rate": "0/0",
            "time_base": "1/90000",
            "duration": "9.064490",
            "disposition": {
                "default": 0, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 1, "timed_thumbnails": 0
            },
            "tags": {
                "comment": "Cover (front)"
            }
        }
    ],
    "format": {
        "filename": "audio.mp3",
        "nb_streams": 2,
        "nb_programs": 0,
        "format_name": "mp3",
        "format_long_name": "MP2/3 (MPEG audio layer 2/3)",
        "start_time": "0.025057",
        "duration": "9.064490",
        "size": "205876",
        "bit_rate": "181701",
        "probe_score": 51,
        "tags": {
            "title": "test title",
            "artist": "test artist",
            "genre": "Classical",
            "date": "2000",
            "track": "2",
            "comment": "test comment",
            "encoder": "Lavf58.29.100"
        }
    }
}`

// AudioOggProbe is a stereo Vorbis file whose tags live on the stream.
const AudioOggProbe = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "vorbis",
            "codec_long_name": "Vorbis",
            "codec_type": "audio",
            "sample_fmt": "fltp",
            "sample_rate": "44100",
            "channels": 2,
            "channel_layout": "stereo",
            "r_frame_rate": "0/0",
            "avg_frame_rate": "0/0",
            "time_base": "1/44100",
            "duration": "9.033401",
            "bit_rate": "128000",
            "disposition": {
                "default": 0, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            },
            "tags": {
                "TITLE": "test title",
                "ARTIST": "test artist",
                "GENRE": "Classical",
                "DATE": "2000",
                "TRACK": "2",
                "COMMENTS": "test comment",
                "LANGUAGE": "eng"
            }
        }
    ],
    "format": {
        "filename": "audio.ogg",
        "nb_streams": 1,
        "nb_programs": 0,
        "format_name": "ogg",
        "format_long_name": "Ogg",
        "start_time": "0.000000",
        "duration": "9.033401",
        "size": "152846",
        "bit_rate": "135360",
        "probe_score": 100
    }
}`

// VideoWebMProbe is a VP8/Vorbis WebM with an English subtitle track. The
// video stream's DURATION tag collides with the structural duration field.
const VideoWebMProbe = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "vp8",
            "codec_long_name": "On2 VP8",
            "profile": "0",
            "codec_type": "video",
            "width": 640,
            "height": 360,
            "coded_width": 640,
            "coded_height": 360,
            "sample_aspect_ratio": "1:1",
            "display_aspect_ratio": "16:9",
            "pix_fmt": "yuv420p",
            "r_frame_rate": "30/1",
            "avg_frame_rate": "30/1",
            "time_base": "1/1000",
            "start_time": "0.000000",
            "disposition": {
                "default": 1, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            },
            "tags": {
                "ENCODER": "Lavc58.54.100 libvpx",
                "DURATION": "00:00:10.875000000"
            }
        },
        {
            "index": 1,
            "codec_name": "vorbis",
            "codec_long_name": "Vorbis",
            "codec_type": "audio",
            "sample_fmt": "fltp",
            "sample_rate": "48000",
            "channels": 2,
            "channel_layout": "stereo",
            "r_frame_rate": "0/0",
            "avg_frame_rate": "0/0",
            "time_base": "1/1000",
            "disposition": {
                "default": 1, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 0, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            },
            "tags": {
                "language": "eng",
                "ENCODER": "Lavc58.54.100 libvorbis",
                "DURATION": "00:00:10.856000000"
            }
        },
        {
            "index": 2,
            "codec_name": "webvtt",
            "codec_long_name": "WebVTT subtitle",
            "codec_type": "subtitle",
            "r_frame_rate": "0/0",
            "avg_frame_rate": "0/0",
            "time_base": "1/1000",
            "disposition": {
                "default": 0, "dub": 0, "original": 0, "comment": 0, "lyrics": 0, "karaoke": 0,
                "forced": 1, "hearing_impaired": 0, "visual_impaired": 0, "clean_effects": 0,
                "attached_pic": 0, "timed_thumbnails": 0
            },
            "tags": {
                "language": "fre",
                "title": "Forced"
            }
        }
    ],
    "format": {
        "filename": "video.webm",
        "nb_streams": 3,
        "nb_programs": 0,
        "format_name": "matroska,webm",
        "format_long_name": "Matroska / WebM",
        "start_time": "0.000000",
        "duration": "10.875000",
        "size": "1186035",
        "bit_rate": "872485",
        "probe_score": 100,
        "tags": {
            "title": "test title",
            "ENCODER": "Lavf58.29.100"
        }
    }
}`
